package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	authdomain "github.com/CristalT/elico-storefront/internal/auth/domain"
	"github.com/CristalT/elico-storefront/internal/collection"
)

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	account, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    account.Token.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	sess := sessionFrom(r.Context())
	if err := sess.Login(r.Context(), account.Token.Token, collection.Identity{UserRef: account.User.Email}); err != nil {
		// The account login succeeded; a failed collection merge stays
		// pending and retries on the next request.
		a.log.Warn("collection merge on login pending", slog.Any("err", err))
	}

	writeJSON(w, http.StatusOK, account)
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req authdomain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	user, err := a.auth.Signup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if token := readCookie(r, tokenCookie); token != "" {
		if err := a.auth.Logout(r.Context(), token); err != nil {
			a.log.Warn("token revoke failed", slog.Any("err", err))
		}
	}
	clearCookie(w, tokenCookie)

	if err := sess.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	if err := a.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	token := readCookie(r, tokenCookie)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{
			Error:   "UNAUTHENTICATED",
			Message: "authentication token required",
		})
		return
	}

	user, err := a.auth.Me(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	token := readCookie(r, tokenCookie)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{
			Error:   "UNAUTHENTICATED",
			Message: "authentication token required",
		})
		return
	}

	var req authdomain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	user, err := a.auth.UpdateProfile(r.Context(), token, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	token := readCookie(r, tokenCookie)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{
			Error:   "UNAUTHENTICATED",
			Message: "authentication token required",
		})
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		Password        string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	if err := a.auth.ChangePassword(r.Context(), token, req.CurrentPassword, req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
