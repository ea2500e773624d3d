package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatRoomKey(roomID string) string {
	return fmt.Sprintf("room:%s", roomID)
}

func FormatRoomPlayersKey(roomID string) string {
	return fmt.Sprintf("room:%s:players", roomID)
}

func FormatRoomProgressKey(roomID string) string {
	return fmt.Sprintf("room:%s:progress", roomID)
}

func FormatRoomChatKey(roomID string) string {
	return fmt.Sprintf("room:%s:chat", roomID)
}

func FormatRoomEventsChannel(roomID string) string {
	return fmt.Sprintf("room:%s:events", roomID)
}

func FormatPlayerRoomKey(playerID string) string {
	return fmt.Sprintf("player:%s:room", playerID)
}
