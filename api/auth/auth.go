package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/api/jsonutil"
	"github.com/Adedunmol/pulso/api/tokens"
	"github.com/Adedunmol/pulso/queue"
)

const refreshCookie = "refresh_token"

type Handler struct {
	Store Store
	Queue queue.Queue
	Token tokens.TokenService
}

func (h *Handler) CreateUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[CreateUserBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	hashedPassword, err := h.Token.HashPassword(data.Password)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	user, err := h.Store.CreateUser(ctx, data.Email, hashedPassword)
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{Status: "error", Message: err.Error()}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}

		log.Printf("error creating user: %s", err)
		response := jsonutil.Response{Status: "error", Message: custom_errors.ErrInternalServer.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	accessToken, refreshToken, err := h.Token.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if err = h.Store.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Queue.Enqueue(&queue.EmailDeliveryPayload{
		Name:     "email",
		Template: "welcome_mail",
		Subject:  "Bienvenido a Pulso",
		Email:    user.Email,
		Data:     map[string]string{"Email": user.Email},
	})
	if err != nil {
		log.Printf("error enqueuing email task: %s", err)
	}

	setRefreshCookie(responseWriter, refreshToken)

	response := jsonutil.Response{
		Status:  "success",
		Message: "User created successfully",
		Data: TokenResponse{
			Token:      accessToken,
			Expiration: int(tokens.AccessTokenExpiry.Seconds()),
			User:       &User{ID: user.ID.String(), Email: user.Email},
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) LoginUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[LoginUserBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.FindUserByEmail(ctx, data.Email)
	if err != nil {
		if !errors.Is(err, custom_errors.ErrNotFound) {
			log.Printf("error finding user: %s", err)
		}
		response := jsonutil.Response{Status: "error", Message: custom_errors.ErrUnauthorized.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	if !h.Token.ComparePasswords(user.Password, data.Password) {
		response := jsonutil.Response{Status: "error", Message: custom_errors.ErrUnauthorized.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	token, refreshToken, err := h.Token.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if err = h.Store.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	setRefreshCookie(responseWriter, refreshToken)

	response := jsonutil.Response{
		Status:  "success",
		Message: "User logged in",
		Data: TokenResponse{
			Token:      token,
			Expiration: int(tokens.AccessTokenExpiry.Seconds()),
			User:       &User{ID: user.ID.String(), Email: user.Email},
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) LogoutUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	refreshToken, err := request.Cookie(refreshCookie)
	if err != nil {
		response := jsonutil.Response{Status: "success", Message: "User logged out successfully"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
		return
	}

	http.SetCookie(responseWriter, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if err = h.Store.DeleteRefreshToken(ctx, refreshToken.Value); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{Status: "success", Message: "User logged out successfully"}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) RefreshTokenHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	oldRefreshToken, err := request.Cookie(refreshCookie)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	if _, err = h.Token.DecodeToken(oldRefreshToken.Value); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	user, err := h.Store.FindUserWithRefreshToken(ctx, oldRefreshToken.Value)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: "invalid token"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	accessToken, newRefreshToken, err := h.Token.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	err = h.Store.UpdateRefreshToken(ctx, oldRefreshToken.Value, newRefreshToken)
	if errors.Is(err, custom_errors.ErrNotFound) {
		response := jsonutil.Response{Status: "error", Message: "invalid token"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	setRefreshCookie(responseWriter, newRefreshToken)

	response := jsonutil.Response{
		Status:  "success",
		Message: "Access token refreshed successfully",
		Data: TokenResponse{
			Token:      accessToken,
			Expiration: int(tokens.AccessTokenExpiry.Seconds()),
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func setRefreshCookie(responseWriter http.ResponseWriter, refreshToken string) {
	http.SetCookie(responseWriter, &http.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		Path:     "/",
		Expires:  time.Now().Add(tokens.RefreshTokenExpiry),
		Secure:   true,
		HttpOnly: true,
		MaxAge:   int(tokens.RefreshTokenExpiry.Seconds()),
	})
}
