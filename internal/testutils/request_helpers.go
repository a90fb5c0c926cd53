package testutils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/frameart/storefront/internal/api/middleware"
	"github.com/frameart/storefront/internal/localstore"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/services/mocks"
	"github.com/frameart/storefront/internal/session"
	"github.com/stretchr/testify/mock"
)

// NewTestSession builds a session over mock engines and moves it to ident.
// Transition calls on the mocks are allowed but not required.
func NewTestSession(ident models.Identity) (*session.Session, *mocks.CartService, *mocks.FavoritesService) {
	cart := &mocks.CartService{}
	favorites := &mocks.FavoritesService{}

	for _, m := range []*mock.Mock{&cart.Mock, &favorites.Mock} {
		m.On("OnSignIn", mock.Anything, mock.Anything).Return(nil).Maybe()
		m.On("OnSignOut", mock.Anything).Return(nil).Maybe()
		m.On("OnGuest", mock.Anything).Return(nil).Maybe()
	}

	s := session.New("test-session", localstore.NewMemoryStore(), cart, favorites)

	ctx := logger.WithLogger(context.Background(), logger.Discard())
	if err := s.Manager.Observe(ctx, ident); err != nil {
		panic(err)
	}

	return s, cart, favorites
}

func CreateTestRequestWithContext(method, target string, body io.Reader, sess *session.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req.WithContext(logger.WithLogger(req.Context(), logger.Discard()))
}
