package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mlm_platform/internal/export"
	"mlm_platform/internal/http/middleware"
	"mlm_platform/internal/logger"
	"mlm_platform/internal/repository"
	"mlm_platform/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func userListFilter(c *gin.Context) repository.UserListFilter {
	f := repository.UserListFilter{Search: c.Query("search")}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = v
	}
	if v := c.Query("active"); v != "" {
		active := v == "true" || v == "1"
		f.Active = &active
	}
	if t, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		f.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		end := t.Add(24*time.Hour - time.Second)
		f.EndDate = &end
	}
	return f
}

// AdminListUsers returns one page of users with search and date filters.
// With ?export=excel the filtered set streams back as an xlsx attachment
// instead.
func (h *Handler) AdminListUsers(c *gin.Context) {
	if c.Query("export") == "excel" {
		h.adminExportUsers(c)
		return
	}
	users, total, err := h.UserRepo.List(c.Request.Context(), userListFilter(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"users": users, "total": total})
}

func (h *Handler) adminExportUsers(c *gin.Context) {
	f := userListFilter(c)
	f.Page = 1
	f.Limit = 100000

	users, _, err := h.UserRepo.List(c.Request.Context(), f)
	if err != nil {
		respondErr(c, err)
		return
	}

	wb, err := export.UsersWorkbook(users)
	if err != nil {
		respondErr(c, err)
		return
	}

	name := export.Filename("users", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := wb.Write(c.Writer); err != nil {
		logger.Error("users export write", "error", err)
	}
}

// AdminUpdateUser edits a user's profile fields, active flag or password.
// Role is never editable through this endpoint; a role field in the body
// is silently dropped.
func (h *Handler) AdminUpdateUser(c *gin.Context) {
	var req struct {
		UserID       string  `json:"user_id"`
		FullName     *string `json:"full_name"`
		Email        *string `json:"email"`
		Mobile       *string `json:"mobile"`
		ProfileImage *string `json:"profile_image"`
		IsActive     *bool   `json:"is_active"`
		Password     *string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil || req.UserID == "" {
		fail(c, http.StatusBadRequest, "user_id is required")
		return
	}

	update := repository.UserUpdate{
		FullName:     req.FullName,
		Email:        req.Email,
		Mobile:       req.Mobile,
		ProfileImage: req.ProfileImage,
		IsActive:     req.IsActive,
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			fail(c, http.StatusBadRequest, "password must be at least 6 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondErr(c, err)
			return
		}
		s := string(hash)
		update.PasswordHash = &s
	}

	user, err := h.UserRepo.Update(c.Request.Context(), req.UserID, update)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"user": user})
}

// AdminLoginAsUser issues a token for a user account so support staff can
// see what the user sees. The impersonation is audit logged.
func (h *Handler) AdminLoginAsUser(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.BindJSON(&req); err != nil || req.UserID == "" {
		fail(c, http.StatusBadRequest, "user_id is required")
		return
	}

	user, err := h.UserRepo.GetByUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}

	token, err := service.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		respondErr(c, err)
		return
	}

	logger.Info("admin impersonation", "admin_id", middleware.UserID(c), "user_id", user.UserID)
	ok(c, gin.H{"token": token, "user": user})
}
