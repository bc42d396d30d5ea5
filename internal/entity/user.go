package entity

import "time"

// DbUser 表示持久化的用户账户。
//
// Followers/Following 以编码文本的形式冗余存放关注关系（见 internal/relation），
// 两列由社交图服务在同一事务内一起更新。
type DbUser struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `gorm:"column:name;type:varchar(191);uniqueIndex;not null" json:"name"`
	Email         string    `gorm:"column:email;type:varchar(191);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	RoleCode      int       `gorm:"column:role_code;not null;default:2" json:"role_code"`
	StatusCode    int       `gorm:"column:status_code;not null;default:0" json:"status_code"`
	OpenID        string    `gorm:"column:openid;type:varchar(255)" json:"openid,omitempty"`
	ActivationKey string    `gorm:"column:activation_key;type:varchar(64)" json:"-"`
	Avatar        string    `gorm:"column:avatar;type:varchar(255)" json:"avatar,omitempty"`
	UserDetailID  *uint     `gorm:"column:user_detail_id" json:"user_detail_id,omitempty"`
	Followers     string    `gorm:"column:followers;type:text" json:"-"`
	Following     string    `gorm:"column:following;type:text" json:"-"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// DbUserDetail holds the optional one-to-one profile extension.
type DbUserDetail struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SexCode   int       `gorm:"column:sex_code" json:"sex_code"`
	Age       int       `gorm:"column:age" json:"age"`
	URL       string    `gorm:"column:url;type:varchar(255)" json:"url"`
	Deposit   float64   `gorm:"column:deposit" json:"deposit"`
	Location  string    `gorm:"column:location;type:varchar(255)" json:"location"`
	Bio       string    `gorm:"column:bio;type:text" json:"bio"`
}

// TableName 指定表名。
func (DbUserDetail) TableName() string {
	return "user_details"
}

// UserSummary is a lightweight user description returned to clients.
// Role and Status carry resolved labels, never raw codes.
type UserSummary struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	Avatar         string    `json:"avatar,omitempty"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserQuery supports searching users with pagination.
type UserQuery struct {
	BaseParams
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

type AuthLoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type UserCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	RoleCode   *int   `json:"role_code"`
	StatusCode *int   `json:"status_code"`
	OpenID     string `json:"openid"`
}

type UserUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	RoleCode   *int    `json:"role_code,omitempty"`
	StatusCode *int    `json:"status_code,omitempty"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *Meta         `json:"meta,omitempty"`
}

type NameAvailabilityResponse struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// UserRelationUpdate carries freshly encoded relation columns for one
// user row. A batch of these is applied in a single transaction.
type UserRelationUpdate struct {
	UserID    uint
	Followers *string
	Following *string
}
