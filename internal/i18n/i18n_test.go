package i18n

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/napolitain/ascension/internal/models"
)

func TestRegister(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Second call is a no-op.
	if err := Register(); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestTagMatching(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"pt-BR", language.BrazilianPortuguese},
		{"en-US", language.AmericanEnglish},
		{"en", language.AmericanEnglish},
		{"", language.BrazilianPortuguese},
		{"not a locale!", language.BrazilianPortuguese},
	}
	for _, tt := range tests {
		if got := Tag(tt.locale); got != tt.want {
			t.Errorf("Tag(%q) = %s, want %s", tt.locale, got, tt.want)
		}
	}
}

func TestEraNames(t *testing.T) {
	pt := Printer("pt-BR")
	en := Printer("en-US")

	if got := EraName(pt, models.BronzeAge); got != "Era do Bronze" {
		t.Errorf("pt-BR bronze = %q", got)
	}
	if got := EraName(en, models.BronzeAge); got != "Bronze Age" {
		t.Errorf("en-US bronze = %q", got)
	}
	for _, era := range models.AllEras() {
		if got := EraName(en, era); got == "era."+string(era) {
			t.Errorf("missing en-US name for %s", era)
		}
		if got := EraName(pt, era); got == "era."+string(era) {
			t.Errorf("missing pt-BR name for %s", era)
		}
	}
}

func TestFormattedMessages(t *testing.T) {
	en := Printer("en-US")
	if got := en.Sprintf("event.upgrade", "Primitive Altar", 2); got != "Primitive Altar upgraded to level 2." {
		t.Errorf("unexpected message %q", got)
	}
	pt := Printer("pt-BR")
	if got := pt.Sprintf("narration.era.fallback", "Era do Bronze"); got != "A humanidade avança para a Era do Bronze." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestCatalogNames(t *testing.T) {
	pt := Printer("pt-BR")
	en := Printer("en-US")
	campfire := &models.Building{ID: "campfire", Name: "Primitive Altar"}
	tools := &models.Technology{ID: "tools", Name: "Knapped Stone"}
	sticks := models.ResourceInfo{Type: models.Sticks, Name: "Sticks"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pt-BR building", BuildingName(pt, campfire), "Altar Primitivo"},
		{"pt-BR technology", TechnologyName(pt, tools), "Pedra Lascada"},
		{"pt-BR resource", ResourceName(pt, sticks), "Gravetos"},
		{"en-US building", BuildingName(en, campfire), "Primitive Altar"},
		{"en-US resource", ResourceName(en, sticks), "Sticks"},
		{"untranslated id", BuildingName(pt, &models.Building{ID: "castle", Name: "Castle"}), "Castle"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, tt.got)
		}
	}
}
