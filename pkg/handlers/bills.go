package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"splitscan/pkg/models"
)

// BillHandler is the CRUD surface for bills and their line items, plus the
// per-person summary. The extraction core never touches these; its products
// are spliced into a bill by the client through these endpoints.
type BillHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBillHandler(db *gorm.DB, log *zap.Logger) *BillHandler {
	return &BillHandler{db: db, log: log}
}

type billRequest struct {
	Title        string `json:"title" binding:"required"`
	Store        string `json:"store"`
	Participants string `json:"participants"`
}

type billItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Participants string          `json:"participants"`
}

func (h *BillHandler) Create(c *gin.Context) {
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill := models.Bill{Title: req.Title, Store: req.Store, Participants: req.Participants}
	if err := h.db.Create(&bill).Error; err != nil {
		h.log.Error("failed to create bill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create bill"})
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *BillHandler) List(c *gin.Context) {
	var bills []models.Bill
	if err := h.db.Preload("Items").Order("created_at desc").Find(&bills).Error; err != nil {
		h.log.Error("failed to list bills", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bills"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillHandler) Get(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillHandler) Update(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}

	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill.Title = req.Title
	bill.Store = req.Store
	bill.Participants = req.Participants
	if err := h.db.Save(&bill).Error; err != nil {
		h.log.Error("failed to update bill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update bill"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillHandler) Delete(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}
	if err := h.db.Select("Items").Delete(&bill).Error; err != nil {
		h.log.Error("failed to delete bill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete bill"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BillHandler) AddItem(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}

	var req billItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	item := models.BillItem{
		BillID:       bill.ID,
		Name:         req.Name,
		Price:        req.Price,
		Participants: req.Participants,
	}
	if err := h.db.Create(&item).Error; err != nil {
		h.log.Error("failed to add item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *BillHandler) UpdateItem(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}

	var item models.BillItem
	if err := h.db.Where("bill_id = ?", bill.ID).First(&item, c.Param("itemID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	var req billItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Participants = req.Participants
	if err := h.db.Save(&item).Error; err != nil {
		h.log.Error("failed to update item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *BillHandler) DeleteItem(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}
	res := h.db.Where("bill_id = ?", bill.ID).Delete(&models.BillItem{}, c.Param("itemID"))
	if res.Error != nil {
		h.log.Error("failed to delete item", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary computes per-person totals: each item's price split evenly among
// its assigned participants; unassigned items split among everyone on the
// bill.
func (h *BillHandler) Summary(c *gin.Context) {
	bill, ok := h.findBill(c)
	if !ok {
		return
	}

	totals := make(map[string]decimal.Decimal)
	for _, name := range bill.AllParticipants() {
		totals[name] = decimal.Zero
	}

	billTotal := decimal.Zero
	for _, item := range bill.Items {
		billTotal = billTotal.Add(item.Price)

		people := item.SplitParticipants()
		if len(people) == 0 {
			people = bill.AllParticipants()
		}
		if len(people) == 0 {
			continue
		}
		share := item.Price.Div(decimal.NewFromInt(int64(len(people)))).Round(2)
		for _, name := range people {
			totals[name] = totals[name].Add(share)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"billId": bill.ID,
		"total":  billTotal,
		"totals": totals,
	})
}

func (h *BillHandler) findBill(c *gin.Context) (models.Bill, bool) {
	var bill models.Bill
	err := h.db.Preload("Items").First(&bill, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
		} else {
			h.log.Error("failed to load bill", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bill"})
		}
		return models.Bill{}, false
	}
	return bill, true
}
