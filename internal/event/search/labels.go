// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import "fmt"

// TagLabel returns the tag filter button label, e.g. "Tags (2)".
func TagLabel(selected []string) string {
	return countLabel("Tags", len(selected))
}

// ChannelLabel returns the channel filter button label, e.g. "Channels (3)".
func ChannelLabel(selected []string) string {
	return countLabel("Channels", len(selected))
}

func countLabel(name string, count int) string {
	if count == 0 {
		return name
	}
	return fmt.Sprintf("%s (%d)", name, count)
}
