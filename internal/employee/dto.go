package employee

type EmployeeResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"employee_code"`
	Name        string `json:"name"`
	JobTitle    string `json:"job_title,omitempty"`
	Department  string `json:"department,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Status      string `json:"status"`
	// 指紋やトークンの中身は出さない。バインド有無だけ。
	DeviceBound bool `json:"device_bound"`
}

type CreateEmployeeRequest struct {
	Code        string `json:"employee_code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	JobTitle    string `json:"job_title"`
	Department  string `json:"department"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
	Department  *string `json:"department,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Status      *string `json:"status,omitempty"`
	// true で端末バインドを解除（機種変更時の管理操作）
	ResetDevice bool `json:"reset_device,omitempty"`
}

func (e Employee) toDTO() EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Code:        e.Code,
		Name:        e.Name,
		JobTitle:    e.JobTitle,
		Department:  e.Department,
		PhoneNumber: e.PhoneNumber,
		Status:      e.Status,
		DeviceBound: e.Bound(),
	}
}
