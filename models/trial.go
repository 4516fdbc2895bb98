// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// TrialState is the observable state of a guest trial countdown.
type TrialState struct {
	RemainingSeconds    int  `json:"remaining_seconds"`
	Expired             bool `json:"expired"`
	ElapsedWithinMinute int  `json:"elapsed_within_minute"`
}

// FormatRemaining renders the remaining time as m:ss.
func (s TrialState) FormatRemaining() string {
	return fmt.Sprintf("%d:%02d", s.RemainingSeconds/60, s.RemainingSeconds%60)
}
