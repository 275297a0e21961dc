// controllers/ticket_controller.go
package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"net/http"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thepalace/palace_backend/config"
	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/models"
)

type TicketController struct {
	DB *mongo.Client
}

func NewTicketController(db *mongo.Client) *TicketController {
	return &TicketController{DB: db}
}

// GetMyTickets returns the caller's tickets, newest first.
func (tc *TicketController) GetMyTickets(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)

	tickets, err := fetchTickets(c.Request().Context(), tc.DB, bson.M{"userId": claims.UID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch tickets: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tickets retrieved successfully",
		Data:    tickets,
	})
}

// GetAllTickets returns every ticket in the ledger, newest first.
func (tc *TicketController) GetAllTickets(c echo.Context) error {
	tickets, err := fetchTickets(c.Request().Context(), tc.DB, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch tickets: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tickets retrieved successfully",
		Data:    tickets,
	})
}

// DeleteMyTicket removes one of the caller's own tickets. Aggregates are not
// adjusted here; the next reload recomputes them.
func (tc *TicketController) DeleteMyTicket(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)

	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ID format",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(tc.DB, "tickets").DeleteOne(ctx, bson.M{
		"_id":    objID,
		"userId": claims.UID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete ticket: " + err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Ticket already removed",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ticket deleted successfully",
	})
}

// DeleteTicket removes any ticket by ID (back office).
func (tc *TicketController) DeleteTicket(c echo.Context) error {
	return deleteByID(c, config.GetCollection(tc.DB, "tickets"), "Ticket")
}

// GetTicketQRCode renders any ticket's reference as a PNG QR code for
// printed receipts (back office).
func (tc *TicketController) GetTicketQRCode(c echo.Context) error {
	ticket, errResp := tc.findTicket(c, "")
	if ticket == nil {
		return errResp
	}
	return tc.renderQRCodePNG(c, ticket)
}

// GetMyTicketQRCode is the sales-screen variant: the lookup is scoped to the
// caller's own tickets, matching the listing and delete endpoints.
func (tc *TicketController) GetMyTicketQRCode(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	ticket, errResp := tc.findTicket(c, claims.UID)
	if ticket == nil {
		return errResp
	}
	return tc.renderQRCodePNG(c, ticket)
}

// GetTicketQRCodeBase64 returns the same QR code as a base64 string for
// clients that embed it inline.
func (tc *TicketController) GetTicketQRCodeBase64(c echo.Context) error {
	ticket, errResp := tc.findTicket(c, "")
	if ticket == nil {
		return errResp
	}
	return tc.renderQRCodeBase64(c, ticket)
}

// GetMyTicketQRCodeBase64 is the ownership-scoped base64 variant.
func (tc *TicketController) GetMyTicketQRCodeBase64(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	ticket, errResp := tc.findTicket(c, claims.UID)
	if ticket == nil {
		return errResp
	}
	return tc.renderQRCodeBase64(c, ticket)
}

func (tc *TicketController) renderQRCodePNG(c echo.Context, ticket *models.Ticket) error {
	image, err := encodeTicketQR(ticket.Reference)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code: " + err.Error(),
		})
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=ticket-"+ticket.Reference+".png")
	return c.Blob(http.StatusOK, "image/png", image)
}

func (tc *TicketController) renderQRCodeBase64(c echo.Context, ticket *models.Ticket) error {
	image, err := encodeTicketQR(ticket.Reference)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "QR code generated successfully",
		Data: map[string]string{
			"reference": ticket.Reference,
			"qrcode":    "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
		},
	})
}

func encodeTicketQR(reference string) ([]byte, error) {
	qrCode, err := qr.Encode("palace://ticket/"+reference, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}

	qrCode, err = barcode.Scale(qrCode, 200, 200)
	if err != nil {
		return nil, err
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, qrCode); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// findTicket loads one ticket by hex ID. A non-empty ownerUID narrows the
// lookup to that owner's tickets; someone else's ticket is then a plain 404.
func (tc *TicketController) findTicket(c echo.Context, ownerUID string) (*models.Ticket, error) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ID format",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var ticket models.Ticket
	err = config.GetCollection(tc.DB, "tickets").FindOne(ctx, ticketFilter(objID, ownerUID)).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Ticket not found",
			})
		}
		return nil, c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch ticket: " + err.Error(),
		})
	}

	return &ticket, nil
}

func ticketFilter(id primitive.ObjectID, ownerUID string) bson.M {
	filter := bson.M{"_id": id}
	if ownerUID != "" {
		filter["userId"] = ownerUID
	}
	return filter
}
