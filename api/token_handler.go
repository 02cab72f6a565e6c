package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-graphql-backend/auth"
	"github.com/rpupo63/blog-graphql-backend/database"
	"github.com/rpupo63/blog-graphql-backend/errs"
)

type tokenHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    *auth.TokenManager
}

func newTokenHandler(userRepo *database.UserRepo, tokens *auth.TokenManager) tokenHandler {
	logger := log.With().Str("handlerName", "tokenHandler").Logger()

	return tokenHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

type obtainPairRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// obtainPair verifies username/password and returns a fresh access/refresh
// pair. Unknown user and wrong password are indistinguishable to the caller.
func (h tokenHandler) obtainPair() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body obtainPairRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByUsername(body.Username)
		if err != nil {
			// Only an unknown username is a credential rejection; a
			// store failure must surface as one
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if !auth.CheckPassword(user.PasswordHash, body.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		access, err := h.tokens.IssueAccessToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		refresh, err := h.tokens.IssueRefreshToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, tokenPairResponse{Access: access, Refresh: refresh})
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// refresh exchanges a valid refresh token for a new access token.
func (h tokenHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		claims, err := h.tokens.ParseRefreshToken(body.Refresh)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid refresh token"))
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid refresh token"))
			return
		}

		access, err := h.tokens.IssueAccessToken(userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, refreshResponse{Access: access})
	}
}
