package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

const (
	msgInternal      = "伺服器錯誤，請稍後再試"
	msgBadJSON       = "請求格式不正確"
	msgLoginRequired = "請先登入"
)

var paymentMethods = map[string]bool{
	types.PaymentCreditCard:   true,
	types.PaymentLinePay:      true,
	types.PaymentBankTransfer: true,
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.catalog.List())
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.catalog.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "找不到此服務")
		return
	}
	writeData(w, http.StatusOK, svc)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	errs := wizard.ErrorMap{}
	errs.Add("name", wizard.ValidateName(req.Name))
	errs.Add("email", wizard.ValidateEmail(req.Email))
	errs.Add("phone", wizard.ValidatePhone(req.Phone))
	errs.Add("password", wizard.ValidatePassword(req.Password))
	if req.Role != types.RoleCustomer && req.Role != types.RoleGuide {
		errs.Add("role", "請選擇帳號類型")
	}
	if !errs.Empty() {
		writeValidation(w, errs)
		return
	}

	res, err := s.store.CreateUser(r.Context(), req)
	switch {
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "此電子郵件已被註冊")
		return
	case err != nil:
		s.internal(w, "register", err)
		return
	}
	s.logger.Info("user registered", map[string]any{"user_id": res.User.ID, "role": res.User.Role})
	writeData(w, http.StatusCreated, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := s.store.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "電子郵件或密碼錯誤")
		return
	case err != nil:
		s.internal(w, "login", err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	caller, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if caller != id {
		writeError(w, http.StatusForbidden, "無權限修改此帳號")
		return
	}

	var req types.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = id

	errs := wizard.ErrorMap{}
	if req.Phone != "" {
		errs.Add("phone", wizard.ValidatePhone(req.Phone))
	}
	if req.IDNumber != "" {
		errs.Add("idNumber", wizard.ValidateIDNumber(req.IDNumber))
		errs.Add("idFront", wizard.ValidateDataURL(req.IDFront, "身分證正面照片"))
		errs.Add("idBack", wizard.ValidateDataURL(req.IDBack, "身分證反面照片"))
	}
	if req.Experience < 0 {
		errs.Add("experienceYears", "年資不能為負數")
	}
	if !errs.Empty() {
		writeValidation(w, errs)
		return
	}

	u, err := s.store.UpdateUser(r.Context(), req)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "找不到此使用者")
		return
	case err != nil:
		s.internal(w, "update user", err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	customerID := ""
	if token := bearer(r); token != "" {
		id, err := s.store.UserIDForToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}
		customerID = id
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "請求內容過大")
		return
	}
	problems, err := ValidateOrderPayload(body)
	if err != nil {
		if len(body) == 0 || !json.Valid(body) {
			writeError(w, http.StatusBadRequest, msgBadJSON)
			return
		}
		s.internal(w, "order schema", err)
		return
	}
	if len(problems) > 0 {
		s.logger.Debug("order payload rejected", map[string]any{"problems": fmt.Sprint(problems)})
		writeError(w, http.StatusBadRequest, "訂單資料格式不正確")
		return
	}
	var req types.CreateOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	svc, ok := s.catalog.Get(req.ServiceID)
	if !ok {
		writeError(w, http.StatusNotFound, "找不到此服務")
		return
	}

	errs := wizard.ErrorMap{}
	errs.Add("date", wizard.ValidateDate(req.Date, s.now()))
	errs.Add("startTime", wizard.ValidateTime(req.StartTime))
	errs.Add("participants", wizard.ValidateParticipants(req.Participants, svc.MinParticipants, svc.MaxParticipants))
	errs.Add("name", wizard.ValidateName(req.Customer.Name))
	errs.Add("email", wizard.ValidateEmail(req.Customer.Email))
	errs.Add("phone", wizard.ValidatePhone(req.Customer.Phone))
	if req.Document != "" {
		errs.Add("document", wizard.ValidateDataURL(req.Document, "旅遊證件圖片"))
	}
	if !errs.Empty() {
		writeValidation(w, errs)
		return
	}

	order, err := s.store.CreateOrder(r.Context(), customerID, req, svc.Price)
	if err != nil {
		s.internal(w, "create order", err)
		return
	}
	s.logger.Info("order created", map[string]any{"order_id": order.ID, "service_id": svc.ID, "total": order.Pricing.Total})
	writeData(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.GetOrder(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "找不到此訂單")
		return
	case err != nil:
		s.internal(w, "get order", err)
		return
	}
	writeData(w, http.StatusOK, order)
}

func (s *Server) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	var req types.PaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !paymentMethods[req.PaymentMethod] {
		writeError(w, http.StatusBadRequest, "請選擇付款方式")
		return
	}
	if strings.TrimSpace(req.PaymentToken) == "" {
		writeError(w, http.StatusBadRequest, "付款資訊不完整")
		return
	}

	order, err := s.store.PayOrder(r.Context(), mux.Vars(r)["id"], req)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "找不到此訂單")
		return
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "此訂單已付款")
		return
	case err != nil:
		s.internal(w, "pay order", err)
		return
	}
	s.logger.Info("order paid", map[string]any{"order_id": order.ID, "method": order.PaymentMethod})
	writeData(w, http.StatusOK, order)
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := bearer(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, msgLoginRequired)
		return "", false
	}
	id, err := s.store.UserIDForToken(r.Context(), token)
	if errors.Is(err, ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, msgLoginRequired)
		return "", false
	}
	if err != nil {
		s.internal(w, "session lookup", err)
		return "", false
	}
	return id, true
}

func (s *Server) internal(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", map[string]any{"error": err})
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func bearer(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return false
	}
	return true
}

// writeValidation reports the first failing field, in field-name order.
func writeValidation(w http.ResponseWriter, errs wizard.ErrorMap) {
	writeError(w, http.StatusBadRequest, errs[errs.Fields()[0]])
}
