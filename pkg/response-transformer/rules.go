package responsetransformer

import (
	"net/http"
	"strings"

	"github.com/always-cache/respond"

	"github.com/rs/zerolog/log"
)

// Rules add headers to successful results, by request path, method and query.
// The first matching rule wins.
type Rules []Rule

type Rule struct {
	Prefix   string            `yaml:"prefix"`
	Path     string            `yaml:"path"`
	Method   string            `yaml:"method"`
	Default  string            `yaml:"default"`
	Override string            `yaml:"override"`
	Query    map[string]string `yaml:"query"`
	Headers  map[string]string `yaml:"headers"`
}

// Middleware applies the rules to the results of next.
func (r Rules) Middleware(next respond.Handler) respond.Handler {
	return respond.HandlerFunc(func(req *http.Request) (respond.Result, error) {
		res, err := next.Serve(req)
		if err != nil {
			return res, err
		}
		r.Apply(req, &res)
		return res, nil
	})
}

// Apply applies the first rule matching req to res.
func (r Rules) Apply(req *http.Request, res *respond.Result) {
	// only apply rules for successes
	if res.Status != http.StatusOK || res.Header == nil {
		return
	}
	if rule := r.find(req); rule != nil {
		applyRuleToResult(*rule, res)
	}
}

func applyRuleToResult(rule Rule, res *respond.Result) {
	if rule.Override != "" {
		log.Trace().Msg("Overriding Cache-Control header")
		res.Header.Set("Cache-Control", rule.Override)
	} else if rule.Default != "" && !res.Header.Has("Cache-Control") {
		log.Trace().Msg("Applying default Cache-Control header")
		res.Header.Set("Cache-Control", rule.Default)
	}
	for name, value := range rule.Headers {
		log.Trace().Msgf("Setting header %s", name)
		res.Header.Set(name, value)
	}
}

func (r Rules) find(req *http.Request) *Rule {
	log.Trace().Msgf("Finding rule for request %s:%s", req.Method, req.URL.Path)
rulesLoop:
	for _, rule := range r {
		if rule.Method == "" && req.Method != http.MethodGet && req.Method != http.MethodHead {
			continue
		}
		if rule.Method != "" && !strings.EqualFold(rule.Method, req.Method) {
			continue
		}
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		log.Trace().Msgf("Matched rule %+v", rule)
		return &rule
	}
	return nil
}
