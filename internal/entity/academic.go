package entity

import "time"

// 学籍记录是纯属性载体：除持久化之外没有任何行为，用户身份核心不依赖它们。

// DbStudent 表示班级里的一名学生。
type DbStudent struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Firstname  string    `gorm:"column:firstname;type:varchar(191)" json:"firstname"`
	Lastname   string    `gorm:"column:lastname;type:varchar(191)" json:"lastname"`
	Mail       string    `gorm:"column:mail;type:varchar(191);uniqueIndex" json:"mail,omitempty"`
	Doc        string    `gorm:"column:doc;type:varchar(10);uniqueIndex" json:"doc,omitempty"`
	GenderCode int       `gorm:"column:gender_code" json:"gender_code"`
}

// TableName 指定表名。
func (DbStudent) TableName() string {
	return "students"
}

// DbSubject represents the whole course.
type DbSubject struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(191)" json:"name"`
	Semester  int       `gorm:"column:semester" json:"semester"`
	Day       int       `gorm:"column:day" json:"day"`
	StartsAt  string    `gorm:"column:starts_at;type:varchar(8)" json:"starts_at"`
	EndsAt    string    `gorm:"column:ends_at;type:varchar(8)" json:"ends_at"`
}

// TableName 指定表名。
func (DbSubject) TableName() string {
	return "subjects"
}

// DbLesson represents the daily class.
type DbLesson struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Date      time.Time `gorm:"column:date" json:"date"`
	Topic     string    `gorm:"column:topic;type:varchar(191)" json:"topic"`
}

// TableName 指定表名。
func (DbLesson) TableName() string {
	return "lessons"
}

// DbGrade holds one student's exam marks.
type DbGrade struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	FirstMidTermExam  *int      `gorm:"column:first_mid_term_exam" json:"first_mid_term_exam"`
	SecondMidTermExam *int      `gorm:"column:second_mid_term_exam" json:"second_mid_term_exam"`
	FirstMakeupExam   *int      `gorm:"column:first_makeup_exam" json:"first_makeup_exam"`
	SecondMakeupExam  *int      `gorm:"column:second_makeup_exam" json:"second_makeup_exam"`
	ThirdMakeupExam   *int      `gorm:"column:third_makeup_exam" json:"third_makeup_exam"`
	FinalExam         *int      `gorm:"column:final_exam" json:"final_exam"`
}

// TableName 指定表名。
func (DbGrade) TableName() string {
	return "grades"
}

// DbResource holds teacher-provided course material.
type DbResource struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Description string    `gorm:"column:description;type:varchar(191)" json:"description"`
	Content     []byte    `gorm:"column:content" json:"-"`
}

// TableName 指定表名。
func (DbResource) TableName() string {
	return "resources"
}

// StudentCreateRequest carries fields for a new student record.
type StudentCreateRequest struct {
	Firstname  string `json:"firstname" binding:"required"`
	Lastname   string `json:"lastname" binding:"required"`
	Mail       string `json:"mail"`
	Doc        string `json:"doc"`
	GenderCode int    `json:"gender_code"`
}

// StudentUpdateRequest carries optional updates for a student record.
type StudentUpdateRequest struct {
	Firstname  *string `json:"firstname,omitempty"`
	Lastname   *string `json:"lastname,omitempty"`
	Mail       *string `json:"mail,omitempty"`
	Doc        *string `json:"doc,omitempty"`
	GenderCode *int    `json:"gender_code,omitempty"`
}
