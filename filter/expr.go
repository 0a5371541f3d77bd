package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/readeck-contrib/readeckctl/readeck"
)

// exprFilter implements CompiledFilter using the expr language.
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler.
type ExprCompilerOption func(*exprCompiler)

// WithCache enables compiled-filter caching with the specified size.
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newFilterCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions to the expression
// environment.
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler.
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *filterCache
}

// Compile compiles an expression into an executable filter.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // bookmark properties are injected at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	compiled := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Add(expression, compiled)
	}

	return compiled, nil
}

// Evaluate evaluates the filter against a bookmark. Bookmarks that make the
// expression fail at runtime are treated as non-matching.
func (f *exprFilter) Evaluate(bookmark readeck.Bookmark) bool {
	env := createRuntimeEnvironment(bookmark)
	maps.Copy(env, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// Guaranteed bool by the AsBool compile option.
	return result.(bool)
}

// Expression returns the original expression.
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// createRuntimeEnvironment builds the evaluation environment for a bookmark.
func createRuntimeEnvironment(bookmark readeck.Bookmark) map[string]any {
	env := make(map[string]any, 48)

	addHelperFunctions(env)

	env["Bookmark"] = bookmark

	// Bookmark-bound helpers
	env["hasLabel"] = bookmark.HasLabel
	env["hasAuthor"] = createHasAuthorFunc(bookmark.Authors)
	env["isRead"] = func() bool { return bookmark.ReadProgress >= 100 }
	env["isUnread"] = func() bool { return bookmark.ReadProgress == 0 }

	// Direct properties for convenience
	env["ID"] = bookmark.ID
	env["Title"] = bookmark.Title
	env["URL"] = bookmark.URL
	env["Site"] = bookmark.Site
	env["SiteName"] = bookmark.SiteName
	env["Description"] = bookmark.Description
	env["Type"] = bookmark.Type
	env["Lang"] = bookmark.Lang
	env["Authors"] = bookmark.Authors
	env["Labels"] = bookmark.Labels
	env["Loaded"] = bookmark.Loaded
	env["HasArticle"] = bookmark.HasArticle
	env["IsArchived"] = bookmark.IsArchived
	env["IsMarked"] = bookmark.IsMarked
	env["WordCount"] = bookmark.WordCount
	env["ReadingTime"] = bookmark.ReadingTime
	env["ReadProgress"] = bookmark.ReadProgress
	env["Created"] = bookmark.Created
	env["Updated"] = bookmark.Updated
	if bookmark.Published != nil {
		env["Published"] = *bookmark.Published
	} else {
		env["Published"] = time.Time{}
	}

	return env
}

func createHasAuthorFunc(authors []string) func(string) bool {
	return func(name string) bool {
		for _, a := range authors {
			if strings.EqualFold(a, name) {
				return true
			}
		}
		return false
	}
}
