// Package entity defines the JSON shapes exposed by the pupupu API.
package entity

import (
	"time"

	"github.com/khoshimi/Pupupu/database/model"
)

// WorkView is a serialized work. Tags are flattened to plain names and the
// stored relative image path is rewritten into an absolute URL.
type WorkView struct {
	Id          int       `json:"id"`
	UserId      int       `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Gallery     string    `json:"gallery"`
	Tags        []string  `json:"tags"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UserEmail   string    `json:"user_email,omitempty"`
}

// UserView is a serialized user profile. The credential never appears here.
type UserView struct {
	Id        int       `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicURL rewrites a stored relative path ("/uploads/...") into an absolute
// URL under the service's public base address. Empty paths stay null.
func PublicURL(baseURL, relPath string) *string {
	if relPath == "" {
		return nil
	}
	u := baseURL + relPath
	return &u
}

// NewWorkView serializes an Art row with its flattened tag names.
func NewWorkView(art *model.Art, tags []string, baseURL string) WorkView {
	if tags == nil {
		tags = []string{}
	}
	return WorkView{
		Id:          art.Id,
		UserId:      art.UserId,
		Title:       art.Title,
		Description: art.Description,
		Gallery:     art.Gallery,
		Tags:        tags,
		ImageURL:    PublicURL(baseURL, art.ImagePath),
		CreatedAt:   art.CreatedAt,
	}
}

// NewUserView serializes a User row.
func NewUserView(user *model.User, baseURL string) UserView {
	return UserView{
		Id:        user.Id,
		Email:     user.Email,
		Username:  user.Username,
		AvatarURL: PublicURL(baseURL, user.AvatarPath),
		CreatedAt: user.CreatedAt,
	}
}

// Status reports process and host health for the admin endpoint.
type Status struct {
	Cpu      float64 `json:"cpu"`
	CpuCores int     `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	Uptime   uint64 `json:"uptime"`
	Requests int64  `json:"requests"`
	Works    int64  `json:"works"`
	Users    int64  `json:"users"`
}
