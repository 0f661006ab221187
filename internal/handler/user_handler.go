package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/GoArmGo/CareerCraft/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// UserHandler — обработчик учетных записей: регистрация, вход, выход и профиль.
type UserHandler struct {
	userUseCase  usecase.UserUseCase
	cookieName   string
	cookieMaxAge time.Duration
	logger       *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, cookieName string, cookieMaxAge time.Duration, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase:  uc,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		logger:       logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	s, err := h.userUseCase.Register(r.Context(), in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	h.setSessionCookie(w, s.Token)
	respondWithJSON(w, http.StatusCreated, userResponse{
		Success: true,
		Message: "User Registered!",
		User:    s.User,
		Token:   s.Token,
	}, h.logger)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in usecase.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	s, err := h.userUseCase.Login(r.Context(), in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	h.setSessionCookie(w, s.Token)
	respondWithJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "User Logged In!",
		User:    s.User,
		Token:   s.Token,
	}, h.logger)
}

// Logout стирает cookie сессии. Токен остается валидным до истечения срока.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, userResponse{Success: true, Message: "Logged Out Successfully."}, h.logger)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetUser(r.Context(), p)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, userResponse{Success: true, User: user}, h.logger)
}

// UpdateUser меняет профиль и перевыпускает cookie с новым токеном.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var in usecase.UpdateUserInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	s, err := h.userUseCase.UpdateUser(r.Context(), p, in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	h.setSessionCookie(w, s.Token)
	respondWithJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Profile Updated!",
		User:    s.User,
		Token:   s.Token,
	}, h.logger)
}

func (h *UserHandler) GetSingleUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUseCase.GetUserByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, userResponse{Success: true, User: user}, h.logger)
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieMaxAge),
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
