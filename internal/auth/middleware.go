package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "mounti/pkg/errors"
	httputil "mounti/pkg/http"
	"mounti/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const userKey contextKey = "auth_user"

// RequireSession wraps a route with bearer-token resolution. The resolved
// user lands in the request context; handlers read it with UserFrom.
func RequireSession(svc Service) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token := bearerToken(r)
			user, err := svc.Resolve(r.Context(), token)
			if err != nil {
				_ = httputil.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func UserFrom(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userKey).(*model.User)
	if !ok || user == nil {
		return nil, apperrors.Unauthenticated("Not authenticated")
	}
	return user, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
