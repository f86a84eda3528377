// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/sixcent/internal/platform/apperr"
	"github.com/taibuivan/sixcent/internal/platform/ctxutil"
	"github.com/taibuivan/sixcent/internal/platform/respond"
	"github.com/taibuivan/sixcent/internal/platform/sec"
)

// TokenResolver defines the interface needed to resolve opaque bearer tokens.
//
// # Why an interface?
//
// Defining TokenResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing. Unlike a signed-claims design, every resolution is a storage
// lookup: the token is a random database key, so possession of a row is
// the entire proof of identity and logout revokes it instantly.
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*sec.Principal, error)
}

// Authenticate extracts and resolves the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the opaque key against the token store.
//  4. Inject [*sec.Principal] into the request context for downstream use.
func Authenticate(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Resolution ───────────────────────────────────────────
			tokenKey := parts[1]
			principal, err := resolver.ResolveToken(request.Context(), tokenKey)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or revoked token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Principal] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
