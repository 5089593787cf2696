package dto

import "anoa.com/campuscircle/internal/model"

type CreateStudentRequest struct {
	RollNumber   string `json:"rollNumber" binding:"required"`
	DOB          string `json:"dob" binding:"required,datetime=2006-01-02"`
	Name         string `json:"name" binding:"required"`
	Department   string `json:"department" binding:"required"`
	Batch        string `json:"batch" binding:"required"`
	ProfileImage string `json:"profileImage"`
}

type UpdateStudentRequest struct {
	RollNumber   *string `json:"rollNumber"`
	DOB          *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Name         *string `json:"name"`
	Department   *string `json:"department"`
	Batch        *string `json:"batch"`
	ProfileImage *string `json:"profileImage"`
}

// BulkStudentRecord carries no binding tags on purpose: each record is
// validated independently so one bad row cannot reject the whole batch.
type BulkStudentRecord struct {
	RollNumber   string `json:"rollNumber"`
	DOB          string `json:"dob"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Batch        string `json:"batch"`
	ProfileImage string `json:"profileImage"`
}

type BulkStudentsRequest struct {
	Students []BulkStudentRecord `json:"students" binding:"required,min=1"`
}

type BulkError struct {
	Index int               `json:"index"`
	Data  BulkStudentRecord `json:"data"`
	Error string            `json:"error"`
}

type BulkResults struct {
	Success []model.Student `json:"success"`
	Errors  []BulkError     `json:"errors"`
}

type BulkStudentsResponse struct {
	Message      string      `json:"message"`
	SuccessCount int         `json:"successCount"`
	ErrorCount   int         `json:"errorCount"`
	Results      BulkResults `json:"results"`
}

type PaginatedStudentsResponse struct {
	Students      []model.Student `json:"students"`
	CurrentPage   int             `json:"currentPage"`
	TotalPages    int             `json:"totalPages"`
	TotalStudents int64           `json:"totalStudents"`
}

type StatsResponse struct {
	TotalStudents       int64 `json:"totalStudents"`
	TotalUsers          int64 `json:"totalUsers"`
	TotalPosts          int64 `json:"totalPosts"`
	StudentsLoggedIn    int64 `json:"studentsLoggedIn"`
	StudentsNotLoggedIn int64 `json:"studentsNotLoggedIn"`
}
