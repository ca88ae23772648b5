package dto

import "github.com/yigit/htiportal/internal/app/models"

// ResultRequest submits or overwrites a student's result in an offering.
type ResultRequest struct {
	StudentID        string   `json:"student_id" binding:"required,uuid_any"`
	CourseOfferingID string   `json:"course_offering_id" binding:"required,uuid_any"`
	CAScore          *float64 `json:"ca_score" binding:"required,gte=0,lte=100"`
	ExamScore        *float64 `json:"exam_score" binding:"required,gte=0,lte=100"`
	TotalScore       *float64 `json:"total_score" binding:"required,gte=0,lte=100"`
	GradeLetter      string   `json:"grade_letter" binding:"required,grade_letter"`
	GradePoints      *float64 `json:"grade_points" binding:"required,gte=0,lte=5"`
	Remark           *string  `json:"remark" binding:"omitempty,max=255"`
}

// ResultsResponse lists a student's results.
type ResultsResponse struct {
	Results []*models.StudentResult `json:"results"`
}
