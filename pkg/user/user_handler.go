package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// CreateUserDTO is the registration body. The uid is always generated by the server.
type CreateUserDTO struct {
	Username    string `json:"username" validate:"required,min=2,max=30"`
	DisplayName string `json:"displayName" validate:"required,max=60"`
}

type Handler struct {
	userService Service
	validator   *rest.Validator
}

func NewHandler(userService Service, validator *rest.Validator) *Handler {
	return &Handler{
		userService: userService,
		validator:   validator,
	}
}

// CreateUser godoc
// @Summary Create a new traveler
// @Description Register a new traveler. The returned uid is used as the X-User-Id header.
// @Tags User
// @Accept json
// @Produce json
// @Param user body CreateUserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Username taken"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if err := h.validator.Validate(dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid user data", rest.ValidationDetails(err))
		return
	}
	log.Tracef("Creating new user: %+v", dto)

	createdUser, err := h.userService.CreateUser(r.Context(), User{Username: dto.Username, DisplayName: dto.DisplayName})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserDataInvalid):
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", "Username and display name are required")
		case errors.Is(err, ErrUsernameTaken):
			rest.WriteError(w, http.StatusConflict, "Username is already taken", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Tracef("Created user: %+v", createdUser)

	rest.WriteJSON(w, http.StatusCreated, userToDTO(createdUser))
}

// CurrentUser godoc
// @Summary Get current traveler
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Failure 404 {string} string "User Not Found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrNoUser) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:         user.Uid,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}
