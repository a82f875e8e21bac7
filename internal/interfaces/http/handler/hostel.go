package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/hostelops/backend/internal/application/property"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
)

// HostelHandler handles hostel and room endpoints
type HostelHandler struct {
	BaseHandler
	hostelService *propertyapp.HostelService
}

// NewHostelHandler creates a new HostelHandler
func NewHostelHandler(hostelService *propertyapp.HostelService) *HostelHandler {
	return &HostelHandler{hostelService: hostelService}
}

// Create registers a new hostel
func (h *HostelHandler) Create(c *gin.Context) {
	var req propertyapp.CreateHostelRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	hostel, err := h.hostelService.CreateHostel(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, hostel)
}

// Update changes a hostel's descriptive fields
func (h *HostelHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req propertyapp.UpdateHostelRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	hostel, err := h.hostelService.UpdateHostel(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hostel)
}

// Deactivate retires a hostel
func (h *HostelHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.hostelService.DeactivateHostel(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get returns one hostel by ID
func (h *HostelHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	hostel, err := h.hostelService.GetHostel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hostel)
}

// List returns hostels, all or active only
func (h *HostelHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	hostels, err := h.hostelService.ListHostels(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hostels)
}

// CreateRoom adds a room to a hostel
func (h *HostelHandler) CreateRoom(c *gin.Context) {
	var req propertyapp.CreateRoomRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	room, err := h.hostelService.CreateRoom(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, room)
}

// UpdateRoom changes a room's number or capacity
func (h *HostelHandler) UpdateRoom(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req propertyapp.UpdateRoomRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	room, err := h.hostelService.UpdateRoom(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// ListRooms returns a hostel's rooms
func (h *HostelHandler) ListRooms(c *gin.Context) {
	hostelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid hostel ID")
		return
	}

	rooms, err := h.hostelService.ListRooms(c.Request.Context(), hostelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rooms)
}
