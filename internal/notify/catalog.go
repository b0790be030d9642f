package notify

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

//go:embed locales.yaml
var localesYAML []byte

const (
	fallbackLocale = "en"
	unknownCode    = "Unknown code"
)

// Locale aliases applied before matching.
var localeAliases = map[string]string{
	"es-419": "es",
	"lt":     "lt-LT",
	"zh":     "zh-Hans",
}

// Catalog renders localized alert text.
type Catalog struct {
	log      *logger.Logger
	messages map[string]map[string]string
	locales  []string
	matcher  language.Matcher
}

// NewCatalog loads the embedded locale table.
func NewCatalog(log *logger.Logger) (*Catalog, error) {
	return parseCatalog(log, localesYAML)
}

func parseCatalog(log *logger.Logger, raw []byte) (*Catalog, error) {
	var messages map[string]map[string]string
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("parse locales: %w", err)
	}
	if _, ok := messages[fallbackLocale]; !ok {
		return nil, fmt.Errorf("parse locales: missing %q table", fallbackLocale)
	}

	// fallback first so the matcher defaults to it
	locales := []string{fallbackLocale}
	for loc := range messages {
		if loc != fallbackLocale {
			locales = append(locales, loc)
		}
	}
	sort.Strings(locales[1:])

	tags := make([]language.Tag, 0, len(locales))
	for _, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("parse locales: bad tag %q: %w", loc, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		log:      log,
		messages: messages,
		locales:  locales,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// Locales lists the supported locale keys.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// Resolve maps a device language code to a supported locale.
func (c *Catalog) Resolve(code string) string {
	code = strings.TrimSpace(code)
	if alias, ok := localeAliases[code]; ok {
		code = alias
	}
	if _, ok := c.messages[code]; ok {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return fallbackLocale
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return fallbackLocale
	}
	return c.locales[idx]
}

// Message renders the template for code in locale, filling {Name}
// placeholders from params.
func (c *Catalog) Message(locale string, code models.EventCode, params map[string]any) string {
	loc := c.Resolve(locale)
	tmpl, ok := c.messages[loc][string(code)]
	if !ok {
		c.log.Warnw("missing_translation", "event_code", code, "locale", loc)
		tmpl, ok = c.messages[fallbackLocale][string(code)]
	}
	if !ok {
		c.log.Errorw("unknown_event_code", "event_code", code)
		return unknownCode
	}
	return fill(tmpl, params)
}

func fill(tmpl string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", formatParam(v))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func formatParam(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
