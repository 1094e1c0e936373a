package attendance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendance-backend/internal/platform/i18n"
)

type Handler struct{ svc *Service }

// キオスクが叩く2本。認証なし（なりすましは端末Guard側で抑える）。
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/employee-status", h.EmployeeStatus)
	r.POST("/check-in", h.CheckIn)
}

func catalogFor(c *gin.Context) i18n.Catalog {
	return i18n.Pick(c.GetHeader("Accept-Language"))
}

func (h *Handler) EmployeeStatus(c *gin.Context) {
	cat := catalogFor(c)

	identifier := c.Query("identifier")
	if identifier == "" {
		c.JSON(http.StatusBadRequest, CheckInResponse{
			Status: "error", Code: CodeInvalidArgument, Message: cat.T(i18n.KeyIdentifierRequired),
		})
		return
	}

	res, err := h.svc.Status(c.Request.Context(), identifier)
	if err != nil {
		h.renderError(c, cat, err, "")
		return
	}
	if res == nil {
		// 未登録は異常ではない。キオスクは「確認してください」画面を出す。
		c.JSON(http.StatusOK, StatusResponse{Status: "not_found", TodaysLog: []LogEntry{}})
		return
	}

	todaysLog := make([]LogEntry, 0, len(res.Todays))
	for _, ev := range res.Todays {
		todaysLog = append(todaysLog, LogEntry{ID: ev.ID, Type: ev.Type, CheckTime: ev.CheckTime})
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:       "found",
		EmployeeName: res.Employee.Name,
		JobTitle:     res.Employee.JobTitle,
		NextAction:   res.Eval.NextAction,
		IsLate:       res.Eval.IsLate,
		TodaysLog:    todaysLog,
		Stats:        &StatsDTO{MonthlyAttendance: res.MonthlyDays},
	})
}

func (h *Handler) CheckIn(c *gin.Context) {
	cat := catalogFor(c)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CheckInResponse{
			Status: "error", Code: CodeInvalidArgument, Message: cat.T(i18n.KeyInvalidRequest),
		})
		return
	}

	res, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, cat, err, req.Type)
		return
	}

	var msg string
	switch {
	case res.Bound:
		msg = cat.T(i18n.KeyDeviceBound, res.EmployeeName)
	case res.SiteName != "":
		msg = cat.T(i18n.KeyRecordedAtSite, string(res.Type), res.SiteName)
	default:
		msg = cat.T(i18n.KeyRecorded, string(res.Type))
	}

	c.JSON(http.StatusOK, CheckInResponse{Status: "success", Message: msg})
}

// renderError: エラー分類をHTTPステータスと表示文言に写す。
// バインド拒否の詳細は出さない（問い合わせ誘導のみ）。
func (h *Handler) renderError(c *gin.Context, cat i18n.Catalog, err error, requested EventType) {
	var api *APIError
	if !errors.As(err, &api) {
		api = ErrInternal(err.Error())
	}

	var msg string
	switch api.Code {
	case CodeNotFound:
		msg = cat.T(i18n.KeyNotFound)
	case CodeWrongAction:
		if requested == EventCheckIn {
			msg = cat.T(i18n.KeyAlreadyCheckedIn)
		} else {
			msg = cat.T(i18n.KeyNotCheckedIn)
		}
	case CodeLateReasonRequired:
		msg = cat.T(i18n.KeyLateReasonRequired)
	case CodeBindingRejected:
		msg = cat.T(i18n.KeyBindingRejected)
	case CodeInvalidArgument:
		msg = cat.T(i18n.KeyInvalidRequest)
	default:
		msg = cat.T(i18n.KeyStorageUnavailable)
	}

	c.JSON(toHTTPStatus(api.Code), CheckInResponse{Status: "error", Code: api.Code, Message: msg})
}
