package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// SaleHandler maneja la creación y consulta de ventas (protegido).
type SaleHandler struct {
	createSale *sales.CreateSaleUseCase
	receipt    *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createSale *sales.CreateSaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{createSale: createSale, receipt: receipt}
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.createSale.CreateSale(c.Context(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.createSale.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// List GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	list, err := h.createSale.ListSales(c.Context(), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}

// GetReceipt GET /api/sales/:id/receipt
func (h *SaleHandler) GetReceipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.GetReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return dto.SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		UserID:        s.UserID,
		UserName:      s.UserName,
		Lines:         lines,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
	}
}
