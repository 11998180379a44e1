package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/auth"
	"github.com/frahmantamala/worldsell/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Middleware", func() {
	var (
		handler http.Handler
		subject string
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		verifier := auth.NewTokenVerifier(&signingKey.PublicKey, testIssuer, slogger)
		mw := auth.NewMiddleware(transport.NewBaseHandler(slogger), verifier)

		subject = ""
		protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			Expect(ok).To(BeTrue())
			subject = principal.Subject
			w.WriteHeader(http.StatusNoContent)
		})
		handler = mw.Authenticate(mw.RequirePermission(auth.PermissionManageCatalog)(protected))
	})

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/catalog/reload", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	errorCode := func(w *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body.Error.Code
	}

	It("should let an operator with manage_catalog through", func() {
		w := call(signToken(signingKey, adminClaims(auth.PermissionManageCatalog)))

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(subject).To(Equal("ops@worldsell.africa"))
	})

	It("should reject requests without a token", func() {
		w := call("")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal("INVALID_TOKEN"))
	})

	It("should reject an invalid token", func() {
		w := call(signToken(otherKey, adminClaims(auth.PermissionManageCatalog)))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should forbid callers lacking the permission", func() {
		w := call(signToken(signingKey, adminClaims("view_catalog")))

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(errorCode(w)).To(Equal("MISSING_PERMISSION"))
		Expect(subject).To(BeEmpty())
	})
})
