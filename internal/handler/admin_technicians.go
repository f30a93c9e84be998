package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/repository"
)

// AdminTechnicianHandler manages technician profiles and service menus.
type AdminTechnicianHandler struct {
	Technicians *repository.TechnicianRepo
}

func NewAdminTechnicianHandler(t *repository.TechnicianRepo) *AdminTechnicianHandler {
	return &AdminTechnicianHandler{Technicians: t}
}

type technicianReq struct {
	UserID       *uint64 `json:"user_id"`
	Name         string  `json:"name"`
	BusinessName string  `json:"business_name"`
	Description  string  `json:"description"`
	Specialties  string  `json:"specialties"`
	Phone        string  `json:"phone"`
	Instagram    string  `json:"instagram"`
	IsActive     *bool   `json:"is_active"`
}

// Create adds a technician profile to the directory.
func (h *AdminTechnicianHandler) Create(c echo.Context) error {
	var req technicianReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t := model.Technician{
		UserID: req.UserID, Name: req.Name, BusinessName: req.BusinessName,
		Description: req.Description, Specialties: req.Specialties,
		Phone: req.Phone, Instagram: req.Instagram, IsActive: active,
	}
	id, err := h.Technicians.Create(ctx, &t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update overwrites a technician's editable profile fields.
func (h *AdminTechnicianHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req technicianReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Technicians.Update(ctx, model.Technician{
		ID: id, Name: req.Name, BusinessName: req.BusinessName,
		Description: req.Description, Specialties: req.Specialties,
		Phone: req.Phone, Instagram: req.Instagram, IsActive: active,
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "technician updated"})
}

type menuReq struct {
	Services []serviceItem `json:"services"`
}
type serviceItem struct {
	Name        string `json:"name"`
	PriceCents  uint32 `json:"price_cents"`
	DurationMin uint32 `json:"duration_min"`
	Category    string `json:"category"`
	Tier        uint8  `json:"tier"`
}

// ReplaceServices swaps a technician's whole service menu in one
// transaction.
func (h *AdminTechnicianHandler) ReplaceServices(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req menuReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svcs := make([]model.Service, 0, len(req.Services))
	for _, s := range req.Services {
		name := strings.TrimSpace(s.Name)
		if name == "" || s.PriceCents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each service needs a name and price_cents"})
		}
		svcs = append(svcs, model.Service{
			TechnicianID: id, Name: name, PriceCents: s.PriceCents,
			DurationMin: s.DurationMin, Category: s.Category, Tier: s.Tier,
		})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Technicians.ReplaceServices(ctx, id, svcs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(svcs)})
}
