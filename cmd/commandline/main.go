package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/pkg/sdk"
	"github.com/ethanbaker/analyzer/pkg/utils"
)

const usage = `Commands:
  add <value>                 analyze and store a string
  get <value>                 show a stored string
  delete <value>              delete a stored string
  list [key=value ...]        list strings (is_palindrome, min_length, max_length, word_count, contains_character)
  ask <query>                 list strings matching a natural language query
  refresh                     refresh the country cache
  countries [key=value ...]   list countries (region, currency, sort=gdp_desc)
  country <name>              show a country
  status                      show the country cache status
  me                          show the profile
  exit                        quit`

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)
	logging.Init(logging.Config{Level: cfg.GetWithDefault("LOG_LEVEL", "warn"), Format: "console"})

	client := sdk.NewClient(
		cfg.GetWithDefault("ANALYZER_URL", "http://localhost:"+cfg.GetWithDefault("API_PORT", "8080")),
		cfg.Get("ADMIN_API_KEY"),
	)

	// Start interactive session
	if err := startInteractiveSession(context.Background(), client, os.Stdin, os.Stdout); err != nil {
		logging.Fatal().Err(err).Msg("[COMMANDLINE]: interactive session failed")
	}
}

// startInteractiveSession reads commands line by line until 'exit' or end of input
func startInteractiveSession(ctx context.Context, client *sdk.Client, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "String analyzer client started. Type 'help' for commands, 'exit' to quit.")

	// Create scanner for reading user input
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		result, err := execute(ctx, client, input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		fmt.Fprintln(out, result)
	}

	return scanner.Err()
}

// execute runs a single command and returns its printable result
func execute(ctx context.Context, client *sdk.Client, input string) (string, error) {
	command, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	var (
		result any
		err    error
	)

	switch command {
	case "help":
		return usage, nil

	case "add":
		result, err = client.CreateString(ctx, arg)

	case "get":
		result, err = client.GetString(ctx, arg)

	case "delete":
		if err = client.DeleteString(ctx, arg); err == nil {
			return "Deleted.", nil
		}

	case "list":
		var filters sdk.StringFilters
		if filters, err = parseStringFilters(arg); err == nil {
			result, err = client.ListStrings(ctx, filters)
		}

	case "ask":
		result, err = client.FilterByNaturalLanguage(ctx, arg)

	case "refresh":
		result, err = client.RefreshCountries(ctx)

	case "countries":
		var query sdk.CountryQuery
		if query, err = parseCountryQuery(arg); err == nil {
			result, err = client.ListCountries(ctx, query)
		}

	case "country":
		result, err = client.GetCountry(ctx, arg)

	case "status":
		result, err = client.GetStatus(ctx)

	case "me":
		result, err = client.GetProfile(ctx)

	default:
		return "", fmt.Errorf("unknown command '%s', type 'help' for commands", command)
	}

	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// parseArgs splits 'key=value' pairs
func parseArgs(arg string) (map[string]string, error) {
	out := map[string]string{}
	for _, field := range strings.Fields(arg) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got '%s'", field)
		}
		out[key] = value
	}
	return out, nil
}

// parseStringFilters builds list filters from 'key=value' pairs
func parseStringFilters(arg string) (sdk.StringFilters, error) {
	var filters sdk.StringFilters

	args, err := parseArgs(arg)
	if err != nil {
		return filters, err
	}

	for key, value := range args {
		switch key {
		case "is_palindrome":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return filters, fmt.Errorf("invalid %s '%s'", key, value)
			}
			filters.IsPalindrome = &b

		case "min_length", "max_length", "word_count":
			n, err := strconv.Atoi(value)
			if err != nil {
				return filters, fmt.Errorf("invalid %s '%s'", key, value)
			}
			switch key {
			case "min_length":
				filters.MinLength = &n
			case "max_length":
				filters.MaxLength = &n
			default:
				filters.WordCount = &n
			}

		case "contains_character":
			c := value
			filters.ContainsCharacter = &c

		default:
			return filters, fmt.Errorf("unknown filter '%s'", key)
		}
	}

	return filters, nil
}

// parseCountryQuery builds a country listing query from 'key=value' pairs
func parseCountryQuery(arg string) (sdk.CountryQuery, error) {
	var query sdk.CountryQuery

	args, err := parseArgs(arg)
	if err != nil {
		return query, err
	}

	for key, value := range args {
		switch key {
		case "region":
			query.Region = value
		case "currency":
			query.Currency = value
		case "sort":
			if value != "gdp_desc" {
				return query, fmt.Errorf("unsupported sort '%s'", value)
			}
			query.SortByGDP = true
		default:
			return query, fmt.Errorf("unknown parameter '%s'", key)
		}
	}

	return query, nil
}
