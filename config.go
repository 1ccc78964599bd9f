package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the configuration struct for the service.
type Config struct {
	// RosterPath is the filepath to an optional yaml market roster, the
	// built-in roster is used when empty.
	RosterPath string
	// HolidayBaseURL overrides the remote holiday source endpoint when set.
	HolidayBaseURL string
	// StatusIntervalMinutes is the interval between status snapshots.
	StatusIntervalMinutes int

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.StatusIntervalMinutes < 0 {
		errs = errors.Join(errs, fmt.Errorf("status interval cannot be negative"))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("rosterpath", &cfg.RosterPath, "the filepath to the yaml market roster")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("holidaybaseurl", &cfg.HolidayBaseURL, "the remote holiday source endpoint")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("statusintervalminutes", &cfg.StatusIntervalMinutes, "the interval between status snapshots")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
