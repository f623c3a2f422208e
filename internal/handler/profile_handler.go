package handler

import (
	"social-system/internal/model"
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps profile media uploads at 8 MB.
const maxUploadSize = 8 << 20

// ProfileHandler serves profile viewing, editing, media, and user search.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetUser returns a user with their profile.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID := pathID(c, "userId")
	if userID == 0 {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.profiles.GetUser(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// UpdateProfileRequest is the profile-edit payload.
type UpdateProfileRequest struct {
	Fullname string `json:"fullname"`
	Bio      string `json:"bio"`
	Birthday string `json:"birthday"`
}

// UpdateProfile writes the caller's editable profile fields.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	profile, err := h.profiles.UpdateProfile(jwt.GetUserIDUint(c), service.ProfileUpdate{
		Fullname: req.Fullname,
		Bio:      req.Bio,
		Birthday: req.Birthday,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "profile updated", response.FilterProfileInfo(profile))
}

// UpdateAvatar replaces the caller's avatar from a multipart upload.
func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	h.updateMedia(c, "avatar")
}

// UpdateCover replaces the caller's cover image.
func (h *ProfileHandler) UpdateCover(c *gin.Context) {
	h.updateMedia(c, "cover")
}

func (h *ProfileHandler) updateMedia(c *gin.Context, field string) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		response.BadRequest(c, field+" file is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.BadRequest(c, "file too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	userID := jwt.GetUserIDUint(c)
	contentType := fileHeader.Header.Get("Content-Type")

	var profile *model.Profile
	if field == "avatar" {
		profile, err = h.profiles.UpdateAvatar(c.Request.Context(), userID, f, fileHeader.Filename, contentType)
	} else {
		profile, err = h.profiles.UpdateCover(c.Request.Context(), userID, f, fileHeader.Filename, contentType)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, field+" updated", response.FilterProfileInfo(profile))
}

// Search matches users by username or full name and annotates each hit with
// the caller's relationship status.
func (h *ProfileHandler) Search(c *gin.Context) {
	results, err := h.profiles.SearchUsers(jwt.GetUserIDUint(c), c.Query("q"), queryInt(c, "limit", 20))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.SearchUserInfo, 0, len(results))
	for _, r := range results {
		info := &response.SearchUserInfo{UserInfo: *response.FilterUserInfo(r.User)}
		if r.FriendshipStatus != "" {
			info.Friendship = &response.FriendshipStatus{Status: r.FriendshipStatus}
		}
		infos = append(infos, info)
	}
	response.Success(c, infos)
}
