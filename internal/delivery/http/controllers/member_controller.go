package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "tablereservation/internal/delivery/http/helpers"
	"tablereservation/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /members/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional: "OWNER" or "CUSTOMER" (defaults to "CUSTOMER")
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if strings.TrimSpace(s.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(s.Nickname) == "" {
		errs = append(errs, "nickname is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	role := strings.ToUpper(strings.TrimSpace(s.Role))
	if role != "" && role != string(domain.RoleOwner) && role != string(domain.RoleCustomer) {
		errs = append(errs, "role must be \"OWNER\" or \"CUSTOMER\"")
	}
	return errs
}

// LoginRequest is the request body for POST /members/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /members/login
type LoginResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
	Member    *domain.Member `json:"member"`
}

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Register a member
// @Description Register a new member with email, phone, nickname, and password. Optional role: "OWNER" or "CUSTOMER" (defaults to "CUSTOMER"). Email, phone, and nickname must each be unique.
// @Tags members
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} helpers.APIResponse "data contains the created member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate email, phone, or nickname)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/signup [post]
func (c *MemberController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	role := domain.MemberRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role == "" {
		role = domain.RoleCustomer
	}
	member, err := c.Service.Register(r.Context(), req.Email, strings.TrimSpace(req.Phone), strings.TrimSpace(req.Nickname), req.Password, role)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, member)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT whose subject is the member ID.
// @Tags members
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/login [post]
func (c *MemberController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, member, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Do not reveal whether the email exists.
		if errors.Is(err, domain.ErrMemberNotFound) || errors.Is(err, domain.ErrInvalidPassword) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", Member: member})
}
