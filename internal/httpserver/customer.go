package httpserver

import (
	"net/http"

	customersvc "magazine-crm/internal/service/customer"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const customerNotFound = "Customer not found"

func addCustomerHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, messageResponse("invalid request body"))
			return
		}
		created, err := svc.Add(c.Request.Context(), in)
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer added successfully", "customer": created})
	}
}

func listCustomersHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.List(c.Request.Context(), c.Query("name"))
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func customerDashboardHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Dashboard(c.Request.Context())
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func magazineDashboardHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.MagazineDashboard(c.Request.Context())
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func graphDataHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		buckets, err := svc.GraphData(c.Request.Context())
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, buckets)
	}
}

func deleteCustomerHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := customersvc.ParseID(c.Param("id"))
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		removed, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully", "deletedCustomer": removed})
	}
}

func editCustomerHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := customersvc.ParseID(c.Param("id"))
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		var in customersvc.EditInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, messageResponse("invalid request body"))
			return
		}
		updated, err := svc.Edit(c.Request.Context(), id, in)
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully", "customer": updated})
	}
}

func renewMagazineHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := customersvc.ParseID(c.Param("id"))
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		renewed, err := svc.Renew(c.Request.Context(), id)
		if err != nil {
			writeError(c, logger, err, customerNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Magazine subscription renewed successfully", "customer": renewed})
	}
}
