package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"

	"github.com/Zachkp/cyberhacker/internal/content"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	cat := content.MustLoad(language.English)
	cases := []struct {
		name        string
		url         string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", url: "/", want: language.English},
		{name: "query", url: "/?lang=fr", accept: "en-US", want: language.French, wantPersist: true},
		{name: "bad query falls through", url: "/?lang=!!", accept: "fr-CH", want: language.French},
		{name: "cookie beats header", url: "/", cookie: "fr", accept: "en", want: language.French},
		{name: "accept", url: "/", accept: "de-DE, fr;q=0.8", want: language.French},
		{name: "unsupported", url: "/?lang=ja", want: language.English, wantPersist: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com"+tc.url, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := Resolve(req, cat)
			if got != tc.want {
				t.Fatalf("tag = %v, want %v", got, tc.want)
			}
			if persist != tc.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tc.wantPersist)
			}
		})
	}
}

func TestSetCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SetCookie(rec, language.French)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != "fr" {
		t.Fatalf("cookies = %+v", cookies)
	}
}
