package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// PresenceData mirrors a user's live-session state.
type PresenceData struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Status    string    `json:"status"` // online/offline
	LastSeen  time.Time `json:"last_seen"`
	Connected bool      `json:"connected"`
}

const (
	PresenceKeyPrefix = "sns:presence:user:"
	OnlineUsersKey    = "sns:online:users"
	PresenceTTL       = 2 * time.Minute // twice the heartbeat interval
)

// SetUserPresence records a user's presence with TTL and maintains the
// online-users set.
func SetUserPresence(userID uint, username string, status string) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	presence := PresenceData{
		UserID:    userID,
		Username:  username,
		Status:    status,
		LastSeen:  time.Now(),
		Connected: status == "online",
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("marshal presence: %w", err)
	}

	if err := Set(key, data, PresenceTTL); err != nil {
		return fmt.Errorf("set presence: %w", err)
	}

	if status == "online" {
		err = client.SAdd(ctx, OnlineUsersKey, userID).Err()
	} else {
		err = client.SRem(ctx, OnlineUsersKey, userID).Err()
	}
	if err != nil {
		return fmt.Errorf("update online set: %w", err)
	}
	return nil
}

// GetUserPresence fetches a user's presence record.
func GetUserPresence(userID uint) (*PresenceData, error) {
	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	data, err := Get(key)
	if err != nil {
		return nil, fmt.Errorf("get presence: %w", err)
	}

	var presence PresenceData
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("unmarshal presence: %w", err)
	}
	return &presence, nil
}

// IsUserOnline reports whether a presence record exists for the user.
func IsUserOnline(userID uint) (bool, error) {
	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	exists, err := Exists(key)
	if err != nil {
		return false, fmt.Errorf("check presence: %w", err)
	}
	return exists > 0, nil
}

// GetOnlineUsers returns the ids in the online set.
func GetOnlineUsers() ([]uint, error) {
	members, err := client.SMembers(ctx, OnlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read online set: %w", err)
	}

	var userIDs []uint
	for _, member := range members {
		var userID uint
		if _, err := fmt.Sscanf(member, "%d", &userID); err == nil {
			userIDs = append(userIDs, userID)
		}
	}
	return userIDs, nil
}

// RefreshUserPresence extends the TTL of a user's presence record.
func RefreshUserPresence(userID uint) error {
	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	exists, err := Exists(key)
	if err != nil {
		return fmt.Errorf("check presence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("user not online")
	}

	if err := Expire(key, PresenceTTL); err != nil {
		return fmt.Errorf("refresh presence: %w", err)
	}
	return nil
}

// RemoveUserPresence drops a user's presence record and set membership.
func RemoveUserPresence(userID uint) error {
	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	if err := Del(key); err != nil {
		return fmt.Errorf("delete presence: %w", err)
	}
	if err := client.SRem(ctx, OnlineUsersKey, userID).Err(); err != nil {
		return fmt.Errorf("remove from online set: %w", err)
	}
	return nil
}
