package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"ja":     LocaleJA,
		"ja-JP":  LocaleJA,
		"EN":     LocaleEN,
		"en-US":  LocaleEN,
		"":       LocaleJA,
		"zh-CN":  LocaleJA,
		"  en  ": LocaleEN,
	}
	for input, expected := range cases {
		if got := Normalize(input); got != expected {
			t.Fatalf("Normalize(%q)=%q expected=%q", input, got, expected)
		}
	}
}

func TestResolveLocalePriority(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?lang=en", nil)
	c.Request.Header.Set("Accept-Language", "ja")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query lang should win, got=%q", got)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Accept-Language", "en-US,en;q=0.9,ja;q=0.8")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("accept-language should be used, got=%q", got)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	if got := ResolveLocale(c); got != DefaultLocale {
		t.Fatalf("default locale expected, got=%q", got)
	}
}

func TestTFallback(t *testing.T) {
	if got := T(LocaleEN, "error.link_not_found"); got != "link not found" {
		t.Fatalf("unexpected en message: %q", got)
	}
	if got := T(LocaleJA, "error.link_not_found"); got == "error.link_not_found" {
		t.Fatalf("ja catalog should contain link_not_found")
	}
	if got := T(LocaleEN, "no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key should fall back to key itself, got=%q", got)
	}
}

func TestSprintf(t *testing.T) {
	got := Sprintf(LocaleJA, "common.success")
	if got == "" || got == "common.success" {
		t.Fatalf("unexpected message: %q", got)
	}
}
