package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/capacity-service/internal/application"
	"github.com/wms-platform/capacity-service/internal/domain"
	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
	"github.com/wms-platform/capacity-service/internal/pkg/metrics"
	"github.com/wms-platform/capacity-service/internal/validation"
)

// containerResponse pairs the container configuration with its live
// capacity row
type containerResponse struct {
	Container *domain.Container         `json:"container"`
	Capacity  *domain.ContainerCapacity `json:"capacity"`
}

// validateActionResponse reports a dry-run validation outcome
type validateActionResponse struct {
	Allowed bool              `json:"allowed"`
	Code    string            `json:"code,omitempty"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func startInboundHandler(service *application.RunService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.StartInboundCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		run, err := service.StartInbound(c.Request.Context(), cmd)
		if err != nil {
			_ = c.Error(err)
			return
		}

		m.RunsStarted.WithLabelValues(serviceName, "inbound").Inc()
		c.JSON(http.StatusCreated, run)
	}
}

func endInboundHandler(service *application.RunService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			WarehouseID string `json:"warehouseId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		cmd := application.EndInboundCommand{
			WarehouseID: req.WarehouseID,
			InboundID:   c.Param("inboundId"),
		}

		run, err := service.EndInbound(c.Request.Context(), cmd)
		if err != nil {
			_ = c.Error(err)
			return
		}

		m.RunsClosed.WithLabelValues(serviceName, "inbound").Inc()
		c.JSON(http.StatusOK, run)
	}
}

func getInboundHandler(service *application.RunService) gin.HandlerFunc {
	return func(c *gin.Context) {
		run, err := service.GetInbound(c.Request.Context(), c.Query("warehouseId"), c.Param("inboundId"))
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, run)
	}
}

func startOutboundHandler(service *application.RunService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.StartOutboundCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		run, err := service.StartOutbound(c.Request.Context(), cmd)
		if err != nil {
			_ = c.Error(err)
			return
		}

		m.RunsStarted.WithLabelValues(serviceName, "outbound").Inc()
		c.JSON(http.StatusCreated, run)
	}
}

func endOutboundHandler(service *application.RunService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			WarehouseID string `json:"warehouseId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		cmd := application.EndOutboundCommand{
			WarehouseID: req.WarehouseID,
			OutboundID:  c.Param("outboundId"),
		}

		run, err := service.EndOutbound(c.Request.Context(), cmd)
		if err != nil {
			_ = c.Error(err)
			return
		}

		m.RunsClosed.WithLabelValues(serviceName, "outbound").Inc()
		c.JSON(http.StatusOK, run)
	}
}

func getOutboundHandler(service *application.RunService) gin.HandlerFunc {
	return func(c *gin.Context) {
		run, err := service.GetOutbound(c.Request.Context(), c.Query("warehouseId"), c.Param("outboundId"))
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, run)
	}
}

func registerContainerHandler(service *application.ContainerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.RegisterContainerCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		container, capacity, err := service.RegisterContainer(c.Request.Context(), cmd)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, containerResponse{Container: container, Capacity: capacity})
	}
}

func getContainerHandler(service *application.ContainerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		container, capacity, err := service.GetContainer(c.Request.Context(), c.Query("warehouseId"), c.Param("containerId"))
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, containerResponse{Container: container, Capacity: capacity})
	}
}

func discontinueContainerHandler(service *application.ContainerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			WarehouseID string `json:"warehouseId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		capacity, err := service.DiscontinueContainer(c.Request.Context(), req.WarehouseID, c.Param("containerId"))
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, capacity)
	}
}

func inventoryInboundHandler(service *application.CapacityService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.InventoryInboundCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		capacity, err := service.InventoryInbound(c.Request.Context(), cmd)
		if err != nil {
			if apperrors.IsRetriable(err) {
				m.OccupancyConflicts.WithLabelValues(serviceName, cmd.WarehouseID).Inc()
			}
			_ = c.Error(err)
			return
		}

		m.CapacityReserved.WithLabelValues(serviceName, cmd.WarehouseID).Add(float64(cmd.Quantity))
		c.JSON(http.StatusOK, capacity)
	}
}

func inventoryOutboundHandler(service *application.CapacityService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.InventoryOutboundCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		capacity, err := service.InventoryOutbound(c.Request.Context(), cmd)
		if err != nil {
			if apperrors.IsRetriable(err) {
				m.OccupancyConflicts.WithLabelValues(serviceName, cmd.WarehouseID).Inc()
			}
			_ = c.Error(err)
			return
		}

		m.CapacityReleased.WithLabelValues(serviceName, cmd.WarehouseID).Add(float64(cmd.Quantity))
		c.JSON(http.StatusOK, capacity)
	}
}

func moveInventoryHandler(service *application.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.MoveInventoryCommand
		if err := c.ShouldBindJSON(&cmd); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		if err := service.MoveInventory(c.Request.Context(), cmd); err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "moved"})
	}
}

// validateActionHandler runs the validation pipeline without mutating
// anything. A rejected action is a successful validation request, so
// business failures map onto a 200 response with the rejection code rather
// than an error status.
func validateActionHandler(service *application.CapacityService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.ActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperrors.ErrBadRequest(err.Error()))
			return
		}

		_, err := service.ValidateAction(c.Request.Context(), &req)
		m.RecordActionValidated(string(req.Kind), err)

		if err != nil {
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				_ = c.Error(err)
				return
			}

			c.JSON(http.StatusOK, validateActionResponse{
				Allowed: false,
				Code:    appErr.Code,
				Reason:  appErr.Message,
				Details: appErr.Details,
			})
			return
		}

		c.JSON(http.StatusOK, validateActionResponse{Allowed: true})
	}
}
