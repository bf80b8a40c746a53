package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authdomain "github.com/TelconGH/admin_portal/internal/app/domain/auth"
	customerdomain "github.com/TelconGH/admin_portal/internal/app/domain/customer"
	networkdomain "github.com/TelconGH/admin_portal/internal/app/domain/network"
	stockdomain "github.com/TelconGH/admin_portal/internal/app/domain/stock"
	txdomain "github.com/TelconGH/admin_portal/internal/app/domain/transaction"
	"github.com/TelconGH/admin_portal/internal/app/services/network"
	"github.com/TelconGH/admin_portal/internal/normalize"
)

// respond renders a normalized result. The portal reuses the normalized
// vocabulary (success/message/data/errors) end to end rather than
// inventing a second response shape.
func respond[T any](c *gin.Context, res normalize.Result[T]) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
		if _, ok := res.Errors["auth"]; ok {
			status = http.StatusUnauthorized
		} else if len(res.Errors) > 0 {
			status = http.StatusUnprocessableEntity
		}
	}
	c.JSON(status, res)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	return page, perPage
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return 0, false
	}
	return id, true
}

// ---- auth ----

func (s *server) handleLogin(c *gin.Context) {
	var creds authdomain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	respond(c, s.auth.Login(c.Request.Context(), currentSession(c), creds))
}

func (s *server) handleRegister(c *gin.Context) {
	var reg authdomain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	respond(c, s.auth.Register(c.Request.Context(), currentSession(c), reg))
}

func (s *server) handleRegisterOwner(c *gin.Context) {
	var reg authdomain.OwnerRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	respond(c, s.auth.RegisterBusinessOwner(c.Request.Context(), currentSession(c), reg))
}

func (s *server) handleLogout(c *gin.Context) {
	sess := currentSession(c)
	res := s.auth.Logout(c.Request.Context(), sess)
	if sess != nil {
		if err := s.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			s.log.WithError(err).Warn("failed to delete session on logout")
		}
	}
	s.clearSessionCookie(c)
	respond(c, res)
}

func (s *server) handleRefresh(c *gin.Context) {
	respond(c, s.auth.Refresh(c.Request.Context(), currentSession(c)))
}

func (s *server) handleMe(c *gin.Context) {
	sess := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":              sess.User,
			"businesses":        sess.Businesses,
			"selected_business": sess.SelectedBusinessID,
			"roles":             sess.Roles,
			"permissions":       sess.Permissions,
		},
	})
}

// ---- business ----

func (s *server) handleListBusinesses(c *gin.Context) {
	page, perPage := pageParams(c)
	respond(c, s.business.List(c.Request.Context(), currentSession(c), page, perPage))
}

func (s *server) handleSwitchBusiness(c *gin.Context) {
	var req struct {
		BusinessID int64 `json:"business_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BusinessID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "business_id is required"})
		return
	}
	respond(c, s.business.Switch(c.Request.Context(), currentSession(c), req.BusinessID))
}

func (s *server) handleBusinessUsers(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)
	respond(c, s.business.Users(c.Request.Context(), currentSession(c), id, page, perPage))
}

// ---- network ----

func (s *server) handleListNetworks(c *gin.Context) {
	page, perPage := pageParams(c)
	f := network.ListFilter{
		Page:    page,
		PerPage: perPage,
		Status:  c.Query("status"),
		Search:  c.Query("search"),
	}
	respond(c, s.network.ListNetworks(c.Request.Context(), currentSession(c), f))
}

func (s *server) handleActiveServices(c *gin.Context) {
	respond(c, s.network.ActiveServices(c.Request.Context(), currentSession(c)))
}

func (s *server) handleGetPricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	respond(c, s.network.Pricing(c.Request.Context(), currentSession(c), id))
}

func (s *server) handleSavePricing(c *gin.Context) {
	var req struct {
		NetworkServiceID int64   `json:"network_service_id"`
		CostPrice        float64 `json:"cost_price"`
		SellingPrice     float64 `json:"selling_price"`
		Commission       float64 `json:"commission"`
		Currency         string  `json:"currency"`
		Active           bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	in := networkdomain.PricingInput{
		NetworkServiceID: req.NetworkServiceID,
		CostPrice:        req.CostPrice,
		SellingPrice:     req.SellingPrice,
		Commission:       req.Commission,
		Currency:         req.Currency,
		Active:           req.Active,
	}
	respond(c, s.network.SavePricing(c.Request.Context(), currentSession(c), in))
}

// ---- stock ----

func (s *server) handleStockBatches(c *gin.Context) {
	respond(c, s.stock.Batches(c.Request.Context(), currentSession(c)))
}

func (s *server) handleCreateBatch(c *gin.Context) {
	var req struct {
		NetworkID int64  `json:"network_id"`
		Name      string `json:"name"`
		Quantity  int64  `json:"quantity"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	in := stockdomain.BatchInput{
		NetworkID: req.NetworkID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	}
	respond(c, s.stock.CreateBatch(c.Request.Context(), currentSession(c), in))
}

func (s *server) handleCreateItems(c *gin.Context) {
	var req struct {
		BatchID       int64    `json:"batch_id"`
		SerialNumbers []string `json:"serial_numbers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	respond(c, s.stock.CreateItems(c.Request.Context(), currentSession(c), req.BatchID, req.SerialNumbers))
}

func (s *server) handleVerifySerial(c *gin.Context) {
	var req struct {
		SerialNumber string `json:"serial_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SerialNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "serial_number is required"})
		return
	}
	respond(c, s.stock.VerifySerial(c.Request.Context(), currentSession(c), req.SerialNumber))
}

// ---- transactions ----

func (s *server) handleListTransactions(c *gin.Context) {
	page, perPage := pageParams(c)
	f := txdomain.Filter{
		Page:      page,
		PerPage:   perPage,
		Status:    c.Query("status"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	var businessID int64
	if v := c.Query("business_id"); v != "" {
		businessID, _ = strconv.ParseInt(v, 10, 64)
	}
	respond(c, s.transaction.List(c.Request.Context(), currentSession(c), businessID, f))
}

func (s *server) handleGetTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	respond(c, s.transaction.Get(c.Request.Context(), currentSession(c), id))
}

func (s *server) handleRecordTransaction(c *gin.Context) {
	var req struct {
		Type      string  `json:"type"`
		Amount    float64 `json:"amount"`
		Reference string  `json:"reference"`
		Customer  string  `json:"customer_name"`
		Notes     string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	in := txdomain.Input{
		Type:      req.Type,
		Amount:    req.Amount,
		Reference: req.Reference,
		Customer:  req.Customer,
		Notes:     req.Notes,
	}
	respond(c, s.transaction.Record(c.Request.Context(), currentSession(c), in))
}

func (s *server) handleApprovePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	respond(c, s.transaction.ApprovePayment(c.Request.Context(), currentSession(c), id))
}

func (s *server) handleRejectPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	respond(c, s.transaction.RejectPayment(c.Request.Context(), currentSession(c), id, req.Reason))
}

// ---- rbac ----

func (s *server) handleListRoles(c *gin.Context) {
	page, perPage := pageParams(c)
	respond(c, s.rbac.ListRoles(c.Request.Context(), currentSession(c), page, perPage))
}

func (s *server) handleGetRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	respond(c, s.rbac.GetRole(c.Request.Context(), currentSession(c), id))
}

func (s *server) handleCreateRole(c *gin.Context) {
	var req struct {
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}
	respond(c, s.rbac.CreateRole(c.Request.Context(), currentSession(c), req.Name, req.Permissions))
}

func (s *server) handleUpdateRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}
	respond(c, s.rbac.UpdateRole(c.Request.Context(), currentSession(c), id, req.Name, req.Permissions))
}

func (s *server) handleDeleteRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	respond(c, s.rbac.DeleteRole(c.Request.Context(), currentSession(c), id))
}

func (s *server) handleListPermissions(c *gin.Context) {
	page, perPage := pageParams(c)
	respond(c, s.rbac.ListPermissions(c.Request.Context(), currentSession(c), page, perPage))
}

func (s *server) handleCreatePermission(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}
	respond(c, s.rbac.CreatePermission(c.Request.Context(), currentSession(c), req.Name))
}

func (s *server) handleUpdatePermission(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}
	respond(c, s.rbac.UpdatePermission(c.Request.Context(), currentSession(c), id, req.Name))
}

func (s *server) handleDeletePermission(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	respond(c, s.rbac.DeletePermission(c.Request.Context(), currentSession(c), id))
}

type accessChange struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

func (s *server) bindAccessChange(c *gin.Context) (accessChange, bool) {
	var req accessChange
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "user_id and name are required"})
		return accessChange{}, false
	}
	return req, true
}

func (s *server) handleAssignRole(c *gin.Context) {
	req, ok := s.bindAccessChange(c)
	if !ok {
		return
	}
	respond(c, s.rbac.AssignRoleToUser(c.Request.Context(), currentSession(c), req.UserID, req.Name))
}

func (s *server) handleRemoveRole(c *gin.Context) {
	req, ok := s.bindAccessChange(c)
	if !ok {
		return
	}
	respond(c, s.rbac.RemoveRoleFromUser(c.Request.Context(), currentSession(c), req.UserID, req.Name))
}

func (s *server) handleAssignPermission(c *gin.Context) {
	req, ok := s.bindAccessChange(c)
	if !ok {
		return
	}
	respond(c, s.rbac.AssignPermissionToUser(c.Request.Context(), currentSession(c), req.UserID, req.Name))
}

func (s *server) handleRemovePermission(c *gin.Context) {
	req, ok := s.bindAccessChange(c)
	if !ok {
		return
	}
	respond(c, s.rbac.RemovePermissionFromUser(c.Request.Context(), currentSession(c), req.UserID, req.Name))
}

// ---- customer details ----

func (s *server) handleSubmitCustomerDetails(c *gin.Context) {
	detail, ok := s.bindCustomerDetail(c)
	if !ok {
		return
	}
	respond(c, s.customer.Submit(c.Request.Context(), currentSession(c), detail))
}

// bindCustomerDetail accepts either a JSON body or a multipart form
// with an optional id_document file.
func (s *server) bindCustomerDetail(c *gin.Context) (customerdomain.Detail, bool) {
	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		var d customerdomain.Detail
		d.FullName = c.PostForm("full_name")
		d.Phone = c.PostForm("phone")
		d.IDType = c.PostForm("id_type")
		d.IDNumber = c.PostForm("id_number")
		d.SerialNumber = c.PostForm("serial_number")
		d.Notes = c.PostForm("notes")
		d.Registered = c.PostForm("registered") == "1"
		d.Ported = c.PostForm("ported") == "1"
		if v := c.PostForm("service_id"); v != "" {
			d.ServiceID, _ = strconv.ParseInt(v, 10, 64)
		}
		if file, err := c.FormFile("id_document"); err == nil {
			f, err := file.Open()
			if err == nil {
				defer f.Close()
				buf := make([]byte, file.Size)
				if _, err := f.Read(buf); err == nil {
					d.IDDocument = buf
					d.IDDocumentFilename = file.Filename
				}
			}
		}
		return d, true
	}

	var req struct {
		FullName     string `json:"full_name"`
		Phone        string `json:"phone"`
		IDType       string `json:"id_type"`
		IDNumber     string `json:"id_number"`
		SerialNumber string `json:"serial_number"`
		ServiceID    int64  `json:"service_id"`
		Registered   bool   `json:"registered"`
		Ported       bool   `json:"ported"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return customerdomain.Detail{}, false
	}
	return customerdomain.Detail{
		FullName:     req.FullName,
		Phone:        req.Phone,
		IDType:       req.IDType,
		IDNumber:     req.IDNumber,
		SerialNumber: req.SerialNumber,
		ServiceID:    req.ServiceID,
		Registered:   req.Registered,
		Ported:       req.Ported,
		Notes:        req.Notes,
	}, true
}

func (s *server) handleDownloadCustomerDetails(c *gin.Context) {
	format := c.Param("format")
	res := s.customer.Download(c.Request.Context(), currentSession(c), format)
	if !res.Success {
		respond(c, res)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+res.Data.Name+`"`)
	c.Data(http.StatusOK, res.Data.ContentType, res.Data.Content)
}
