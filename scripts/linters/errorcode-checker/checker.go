package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gear6io/lendq/pkg/errors"
)

var ErrParseFailed = errors.MustNewCode("codecheck.parse_failed")

// ErrorCodeChecker checks for proper ErrorCode usage
type ErrorCodeChecker struct {
	fileSet    *token.FileSet
	errorCodes map[string]*ErrorCodeInfo // keyed by package + "." + name
	usages     []usage
	verbose    bool
}

type usage struct {
	name string
	pos  string
	pkg  string // declaring directory, or the qualifier for pkg.ErrX
}

// NewErrorCodeChecker creates a new ErrorCodeChecker
func NewErrorCodeChecker(verbose bool) *ErrorCodeChecker {
	return &ErrorCodeChecker{
		fileSet:    token.NewFileSet(),
		errorCodes: make(map[string]*ErrorCodeInfo),
		verbose:    verbose,
	}
}

// debug prints debug output only when verbose mode is enabled
func (c *ErrorCodeChecker) debug(format string, args ...interface{}) {
	if c.verbose {
		fmt.Printf(format, args...)
	}
}

// CheckDirectory recursively checks a directory for ErrorCode usage
func (c *ErrorCodeChecker) CheckDirectory(dir string, excludePaths []string) error {
	err := walkGoFiles(dir, excludePaths, c.CheckFile)
	if err != nil {
		return err
	}
	c.resolveUsages()
	return nil
}

// walkGoFiles calls fn for every .go file under dir outside excludePaths.
func walkGoFiles(dir string, excludePaths []string, fn func(path string) error) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(dir, path)
		for _, excludePath := range excludePaths {
			if strings.Contains(filepath.ToSlash(rel)+"/", excludePath) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if info.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		return fn(path)
	})
}

// CheckFile checks a single Go file for ErrorCode declarations and usage
func (c *ErrorCodeChecker) CheckFile(filePath string) error {
	file, err := parser.ParseFile(c.fileSet, filePath, nil, parser.SkipObjectResolution)
	if err != nil {
		return errors.New(ErrParseFailed, "failed to parse file", err).AddContext("file", filePath)
	}

	pkg := filepath.Dir(filePath)
	c.checkDeclarations(file, filePath, pkg)
	c.checkUsage(file, filePath, pkg)
	return nil
}

// checkDeclarations records Err* variables initialised with errors.MustNewCode
func (c *ErrorCodeChecker) checkDeclarations(file *ast.File, filePath, pkg string) {
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, name := range spec.Names {
			if !strings.HasPrefix(name.Name, "Err") || len(spec.Values) <= i {
				continue
			}
			code, ok := mustNewCodeLiteral(spec.Values[i])
			if !ok {
				continue
			}

			pos := c.fileSet.Position(name.Pos())
			c.errorCodes[pkg+"."+name.Name] = &ErrorCodeInfo{
				Name:    name.Name,
				Code:    code,
				File:    filePath,
				Line:    pos.Line,
				Package: pkg,
			}
			c.debug("declared %s = %q at %s:%d\n", name.Name, code, filePath, pos.Line)
		}
		return true
	})
}

// mustNewCodeLiteral matches errors.MustNewCode("pkg.name").
func mustNewCodeLiteral(expr ast.Expr) (string, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return "", false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "MustNewCode" {
		return "", false
	}
	if ident, ok := sel.X.(*ast.Ident); !ok || ident.Name != "errors" {
		return "", false
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	code, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return code, true
}

// checkUsage records every Err* identifier; they are matched against
// declarations once the whole tree has been read.
func (c *ErrorCodeChecker) checkUsage(file *ast.File, filePath, pkg string) {
	ast.Inspect(file, func(n ast.Node) bool {
		var ident *ast.Ident
		switch x := n.(type) {
		case *ast.SelectorExpr:
			// pkg.ErrX from another package counts for the declaring package
			if id, ok := x.X.(*ast.Ident); ok && strings.HasPrefix(x.Sel.Name, "Err") {
				pos := c.fileSet.Position(x.Sel.Pos())
				c.usages = append(c.usages, usage{name: x.Sel.Name, pos: fmt.Sprintf("%s:%d", filePath, pos.Line), pkg: id.Name})
				return false
			}
			return true
		case *ast.Ident:
			ident = x
		default:
			return true
		}

		if !strings.HasPrefix(ident.Name, "Err") {
			return true
		}
		pos := c.fileSet.Position(ident.Pos())
		c.usages = append(c.usages, usage{name: ident.Name, pos: fmt.Sprintf("%s:%d", filePath, pos.Line), pkg: pkg})
		return true
	})
}

// resolveUsages marks declarations as used. A same package reference on the
// declaration line itself is not a use. Qualified references match any
// declaring directory whose base name is the qualifier.
func (c *ErrorCodeChecker) resolveUsages() {
	for _, u := range c.usages {
		if info, ok := c.errorCodes[u.pkg+"."+u.name]; ok {
			if u.pos == fmt.Sprintf("%s:%d", info.File, info.Line) {
				continue
			}
			markUsed(info, u.pos)
			continue
		}
		for _, info := range c.errorCodes {
			if info.Name == u.name && filepath.Base(info.Package) == u.pkg {
				markUsed(info, u.pos)
			}
		}
	}
}

func markUsed(info *ErrorCodeInfo, pos string) {
	info.Used = true
	for _, p := range info.UsedIn {
		if p == pos {
			return
		}
	}
	info.UsedIn = append(info.UsedIn, pos)
}
