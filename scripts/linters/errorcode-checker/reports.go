package main

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/gear6io/lendq/pkg/errors"
)

// Report lists unused ErrorCodes grouped by package
func (c *ErrorCodeChecker) Report() (bool, []string) {
	var unused int
	var report []string

	for _, pkg := range c.packages() {
		report = append(report, fmt.Sprintf("\n📦 Package: %s", pkg))

		for _, info := range c.codesIn(pkg) {
			if !info.Used {
				unused++
				report = append(report, fmt.Sprintf("  ❌ UNUSED: %s (%s) declared in %s:%d", info.Name, info.Code, info.File, info.Line))
			} else {
				c.debug("  used: %s in %s\n", info.Name, strings.Join(info.UsedIn, ", "))
			}
		}
	}

	return unused == 0, report
}

// ReportCodeFormat checks every code literal against errors.NewCode and
// reports a code string declared more than once.
func (c *ErrorCodeChecker) ReportCodeFormat() (bool, []string) {
	var report []string
	seen := make(map[string]*ErrorCodeInfo)

	for _, pkg := range c.packages() {
		for _, info := range c.codesIn(pkg) {
			if _, err := errors.NewCode(info.Code); err != nil {
				report = append(report, fmt.Sprintf("❌ INVALID: %s in %s:%d: %v", info.Name, info.File, info.Line, err))
			}
			if first, dup := seen[info.Code]; dup {
				report = append(report, fmt.Sprintf("❌ DUPLICATE: %q in %s:%d, first declared in %s:%d",
					info.Code, info.File, info.Line, first.File, first.Line))
				continue
			}
			seen[info.Code] = info
		}
	}

	return len(report) == 0, report
}

// CheckForbiddenPatterns reports forbidden error creation patterns outside
// test files
func (c *ErrorCodeChecker) CheckForbiddenPatterns(dir string, excludePaths []string, forbiddenPatterns []string) (bool, []string) {
	var report []string

	patterns := make([]*regexp.Regexp, 0, len(forbiddenPatterns))
	for _, p := range forbiddenPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			report = append(report, fmt.Sprintf("⚠️  SKIPPED: invalid pattern %q: %v", p, err))
			continue
		}
		patterns = append(patterns, re)
	}

	violations := 0
	err := walkGoFiles(dir, excludePaths, func(path string) error {
		if strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, re := range patterns {
			for _, match := range re.FindAllIndex(content, -1) {
				line := strings.Count(string(content[:match[0]]), "\n") + 1
				violations++
				report = append(report, fmt.Sprintf("❌ FORBIDDEN: %s in %s:%d", re, path, line))
			}
		}
		return nil
	})
	if err != nil {
		report = append(report, fmt.Sprintf("⚠️  Error checking forbidden patterns: %v", err))
	}

	return violations == 0, report
}

func (c *ErrorCodeChecker) packages() []string {
	set := make(map[string]struct{})
	for _, info := range c.errorCodes {
		set[info.Package] = struct{}{}
	}
	pkgs := make([]string, 0, len(set))
	for pkg := range set {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}

func (c *ErrorCodeChecker) codesIn(pkg string) []*ErrorCodeInfo {
	var infos []*ErrorCodeInfo
	for _, info := range c.errorCodes {
		if info.Package == pkg {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
