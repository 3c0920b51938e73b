package models

import "time"

// Participant is a user currently joined to a classroom.
type Participant struct {
	Name     string    `json:"name"`
	UserType Role      `json:"user_type"`
	JoinedAt time.Time `json:"joined_at"`
}

// Classroom is a live class session grouping participants under one ID.
type Classroom struct {
	ClassID     string        `json:"class_id"`
	TeacherName string        `json:"teacher_name"`
	CreatedAt   time.Time     `json:"created_at"`
	IsActive    bool          `json:"is_active"`
	Users       []Participant `json:"users"`
}

// CreateClassroomRequest is the request body for creating a classroom.
type CreateClassroomRequest struct {
	TeacherName string `json:"teacher_name" binding:"required"`
}

// CreateClassroomResponse is the response for creating a classroom.
type CreateClassroomResponse struct {
	ClassID     string `json:"class_id"`
	TeacherName string `json:"teacher_name"`
}
