package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gear6io/lendq/pkg/errors"
)

func main() {
	var (
		dir        = flag.String("dir", ".", "Directory to check")
		configPath = flag.String("config", ".errorcode.yml", "Path to configuration file")
	)
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		if !errors.HasCode(err, ErrConfigRead) {
			fmt.Fprintln(os.Stderr, errors.FormatError(err))
			os.Exit(2)
		}
		config, _ = loadConfig("")
	}

	checker := NewErrorCodeChecker(config.Verbose)

	fmt.Printf("🔍 Checking ErrorCode usage in directory: %s\n", *dir)
	fmt.Printf("🚫 Excluding paths: %s\n", strings.Join(config.ExcludePaths, ", "))
	fmt.Println()

	if err := checker.CheckDirectory(*dir, config.ExcludePaths); err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatError(err))
		os.Exit(2)
	}

	allUsed, usageReport := checker.Report()
	printLines(usageReport)

	failed := !allUsed && config.ExitOnUnused

	if config.CheckFormat {
		fmt.Println("🔍 Checking ErrorCode format...")
		ok, report := checker.ReportCodeFormat()
		printLines(report)
		if !ok && config.ExitOnFormat {
			failed = true
		}
	}

	if config.CheckForbidden {
		fmt.Println("🔍 Checking for forbidden error patterns...")
		ok, report := checker.CheckForbiddenPatterns(*dir, config.ExcludePaths, config.ForbiddenPatterns)
		printLines(report)
		if !ok && config.ExitOnForbidden {
			failed = true
		}
	}

	fmt.Println("📊 FINAL SUMMARY:")
	fmt.Println("==================")
	if allUsed {
		fmt.Println("✅ All ErrorCodes are being used!")
	} else {
		fmt.Println("❌ Found unused ErrorCodes!")
	}

	if failed {
		fmt.Println("🚨 Exiting due to linting violations (exit_on_*: true)")
		os.Exit(1)
	}
	fmt.Println("✅ All checks completed successfully!")
}

func printLines(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println()
}
