// Package i18n registers the embedded message catalogs with x/text/message
// and hands out printers for the supported locales.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/napolitain/ascension/internal/models"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = "pt-BR"

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supported)

var (
	registerOnce sync.Once
	registerErr  error
)

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Register loads the embedded catalogs into the x/text message catalog. It is
// safe to call repeatedly.
func Register() error {
	registerOnce.Do(func() {
		registerErr = registerFS(embeddedLocales)
	})
	return registerErr
}

func registerFS(fsys fs.FS) error {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse catalog %s: %w", p, err)
		}

		localeFromPath := path.Base(path.Dir(p))
		if strings.TrimSpace(file.Locale) != localeFromPath {
			return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.Locale, localeFromPath)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", file.Locale, err)
		}

		keys := make([]string, 0, len(file.Messages))
		for key := range file.Messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, file.Messages[key]); err != nil {
				return fmt.Errorf("catalog %s: set %q: %w", p, key, err)
			}
		}
	}
	return nil
}

// Tag resolves a locale string to the closest supported language
func Tag(locale string) language.Tag {
	parsed, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return supported[0]
	}
	_, idx, _ := matcher.Match(parsed)
	return supported[idx]
}

// Printer returns a message printer for the locale, registering catalogs on
// first use
func Printer(locale string) *message.Printer {
	// Registration only fails on a broken embedded catalog; printers then
	// fall back to the message keys.
	_ = Register()
	return message.NewPrinter(Tag(locale))
}

// EraName returns the localized display name of an era
func EraName(p *message.Printer, era models.Era) string {
	return p.Sprintf("era." + string(era))
}

// Catalog names are looked up by id. Locales without a translation keep the
// name from the catalog file.

func BuildingName(p *message.Printer, b *models.Building) string {
	return p.Sprintf(message.Key("building."+b.ID, b.Name))
}

func TechnologyName(p *message.Printer, t *models.Technology) string {
	return p.Sprintf(message.Key("technology."+t.ID, t.Name))
}

func ResourceName(p *message.Printer, info models.ResourceInfo) string {
	return p.Sprintf(message.Key("resource."+string(info.Type), info.Name))
}
