// Package server exposes the glass estimator over HTTP.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/GlassCut/internal/engine"
	"github.com/piwi3910/GlassCut/internal/export"
	"github.com/piwi3910/GlassCut/internal/gcode"
	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/piwi3910/GlassCut/internal/project"
	"github.com/piwi3910/GlassCut/internal/window"
)

// Server holds the shared state behind the HTTP handlers. Catalog and
// prices are read-only after construction.
type Server struct {
	optimizer *engine.Optimizer
	catalog   model.Catalog
	prices    model.PriceList
	store     *project.Store
}

// New creates a Server packing with settings against catalog and prices and
// saving quotes to store.
func New(settings model.CutSettings, catalog model.Catalog, prices model.PriceList, store *project.Store) *Server {
	return &Server{
		optimizer: engine.New(settings),
		catalog:   catalog,
		prices:    prices,
		store:     store,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	api := r.Group("/api")
	api.GET("/stocks", s.handleStocks)
	api.POST("/pack", s.handlePack)
	api.POST("/compare", s.handleCompare)
	api.POST("/preview", s.handlePreview)
	api.POST("/chart", s.handleChart)
	api.POST("/gcode", s.handleGCode)

	api.POST("/quotes", s.handleSaveQuote)
	api.GET("/quotes", s.handleListQuotes)
	api.GET("/quotes/:id", s.handleGetQuote)
	api.DELETE("/quotes/:id", s.handleDeleteQuote)

	return r
}

// packRequest is an estimate request whose panels may come directly or be
// derived from windows.
type packRequest struct {
	engine.EstimateRequest
	Windows []window.Window `json:"windows,omitempty"`
	Color   window.Color    `json:"color,omitempty"`
}

type packResponse struct {
	model.Estimate
	Profiles            []window.ProfileCut `json:"profiles,omitempty"`
	BilledSquareFootage float64             `json:"billed_square_footage,omitempty"`
	BilledTotal         float64             `json:"billed_total,omitempty"`
	Skipped             []string            `json:"skipped,omitempty"`
}

type comparisonRow struct {
	Name          string  `json:"name"`
	SelectedStock string  `json:"selected_stock"`
	SheetsUsed    int     `json:"sheets_used"`
	WastePercent  float64 `json:"waste_percent"`
	TotalCost     float64 `json:"total_cost"`
	Unplaced      int     `json:"unplaced"`
	Failed        bool    `json:"failed"`
}

type saveQuoteRequest struct {
	ClientName string `json:"client_name"`
	packRequest
}

func (s *Server) handleStocks(c *gin.Context) {
	glassType := c.DefaultQuery("glass_type", model.DefaultGlass)
	stocks := s.catalog.StocksFor(glassType)

	labels := make([]string, 0, len(stocks))
	for _, st := range stocks {
		labels = append(labels, st.Label())
	}
	c.JSON(http.StatusOK, gin.H{
		"glass_type": glassType,
		"stocks":     stocks,
		"labels":     labels,
	})
}

func (s *Server) handlePack(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.pack(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCompare(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	estReq, _, err := resolvePanels(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	glassType := estReq.GlassType
	if glassType == "" {
		glassType = model.DefaultGlass
	}
	supplier := estReq.Supplier
	if supplier == "" {
		supplier = model.SupplierBestPrice
	}
	quote := s.prices.Lookup(glassType, supplier)
	if estReq.PricePerSqFt != nil {
		quote = model.Quote{Price: *estReq.PricePerSqFt, Source: model.PriceSourceManual}
	}

	stocks := s.catalog.StocksFor(glassType)
	results := s.optimizer.CompareStocks(engine.BuildStockScenarios(stocks), estReq.Panels, stocks, glassType, quote)

	rows := make([]comparisonRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, comparisonRow{
			Name:          r.Scenario.Name,
			SelectedStock: r.Scenario.SelectedStock,
			SheetsUsed:    r.SheetsUsed,
			WastePercent:  r.WastePercent,
			TotalCost:     r.TotalCost,
			Unplaced:      r.UnplacedCount,
			Failed:        r.Allocation.Failed(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"glass_type": glassType,
		"results":    rows,
		"cheapest":   engine.Cheapest(results),
	})
}

// handlePreview renders one packed sheet as PNG. Query: sheet (1-based,
// default 1) and px (pixels per inch).
func (s *Server) handlePreview(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sheet, err := strconv.Atoi(c.DefaultQuery("sheet", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet"})
		return
	}
	px, err := strconv.Atoi(c.DefaultQuery("px", strconv.Itoa(export.DefaultPixelsPerInch)))
	if err != nil || px <= 0 || px > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid px"})
		return
	}

	resp, err := s.pack(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	layouts := resp.Summary.Layouts()
	if sheet < 1 || sheet > len(layouts) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("sheet %d not found (%d packed)", sheet, len(layouts))})
		return
	}

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := export.WritePNG(c.Writer, layouts[sheet-1], px); err != nil {
		log.Printf("[SERVER] Preview encode failed: %v", err)
	}
}

func (s *Server) handleChart(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.pack(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	title := model.ParseGlassType(resp.Summary.GlassType).DisplayName() + " utilisation"
	if err := export.WriteChart(c.Writer, resp.Summary.Layouts(), title); err != nil {
		log.Printf("[SERVER] Chart render failed: %v", err)
	}
}

// handleGCode returns the cutting-table scoring program of one packed sheet.
// Query: sheet (1-based, default 1), profile and speed (inches per minute).
func (s *Server) handleGCode(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sheet, err := strconv.Atoi(c.DefaultQuery("sheet", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet"})
		return
	}
	settings := gcode.DefaultSettings()
	settings.Profile = c.DefaultQuery("profile", settings.Profile)
	if v := c.Query("speed"); v != "" {
		if settings.FeedRate, err = strconv.ParseFloat(v, 64); err != nil || settings.FeedRate <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid speed"})
			return
		}
	}

	resp, err := s.pack(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	layouts := resp.Summary.Layouts()
	if sheet < 1 || sheet > len(layouts) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("sheet %d not found (%d packed)", sheet, len(layouts))})
		return
	}

	c.String(http.StatusOK, gcode.New(settings).GenerateSheet(layouts[sheet-1], sheet))
}

func (s *Server) handleSaveQuote(c *gin.Context) {
	var req saveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.pack(req.packRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selected := req.SelectedStock
	if selected == "" {
		selected = model.OptimizeSelection
	}
	q, err := s.store.SaveQuote(c.Request.Context(), req.ClientName, selected, resp.Estimate)
	if err != nil {
		log.Printf("[SERVER] Save quote failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save quote"})
		return
	}
	log.Printf("[SERVER] Saved quote %s (%s, %d sheets)", q.ID, q.GlassType, q.TotalSheets)
	c.JSON(http.StatusCreated, q)
}

func (s *Server) handleListQuotes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	quotes, err := s.store.ListQuotes(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (s *Server) handleGetQuote(c *gin.Context) {
	q, err := s.store.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, project.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) handleDeleteQuote(c *gin.Context) {
	if err := s.store.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, project.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) pack(req packRequest) (packResponse, error) {
	estReq, takeoff, err := resolvePanels(req)
	if err != nil {
		return packResponse{}, err
	}
	resp := packResponse{Estimate: s.optimizer.Estimate(estReq, s.catalog, s.prices)}
	if takeoff != nil {
		resp.Profiles = takeoff.Profiles
		resp.BilledSquareFootage = takeoff.BilledSquareFootage
		resp.BilledTotal = takeoff.BilledSquareFootage * resp.Summary.PricePerSqFt
		resp.Skipped = takeoff.Skipped
	}
	return resp, nil
}

// resolvePanels appends the panes derived from req.Windows to req.Panels.
func resolvePanels(req packRequest) (engine.EstimateRequest, *window.Takeoff, error) {
	estReq := req.EstimateRequest
	var takeoff *window.Takeoff
	if len(req.Windows) > 0 {
		color := req.Color
		if color == "" {
			color = window.White
		}
		t := window.Derive(req.Windows, color)
		takeoff = &t
		estReq.Panels = append(append([]model.Panel(nil), estReq.Panels...), t.Panels...)
	}

	if len(estReq.Panels) == 0 {
		return estReq, takeoff, errors.New("no panels to pack")
	}
	for i, p := range estReq.Panels {
		if p.Width <= 0 || p.Height <= 0 {
			return estReq, takeoff, fmt.Errorf("panel %d: width and height must be positive", i+1)
		}
	}
	return estReq, takeoff, nil
}
