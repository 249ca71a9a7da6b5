package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		utils.WriteMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during user registration")
		} else {
			log.Debug().Err(err).Msg("registration rejected")
		}
		utils.WriteMessage(w, messageFromError(err, app.MsgRegistrationFailed), status)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteMessage(w, app.MsgRegistrationFailed, http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", registeredUser.UserID).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		Token:    token.SignedString,
		UserID:   registeredUser.UserID,
		Username: registeredUser.Username,
		Message:  app.MsgRegistrationSuccessful,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		utils.WriteMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during user login")
		} else {
			log.Debug().Err(err).Msg("login rejected")
		}
		utils.WriteMessage(w, messageFromError(err, app.MsgLoginFailed), status)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteMessage(w, app.MsgLoginFailed, http.StatusInternalServerError)
		return
	}

	log.Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.AuthResponse{
		Token:    token.SignedString,
		UserID:   foundUser.UserID,
		Username: foundUser.Username,
		Message:  app.MsgLoginSuccessful,
	}, http.StatusOK)
}
