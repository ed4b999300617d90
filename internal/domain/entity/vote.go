package entity

import (
	"time"
)

// SubjectType identifies which kind of node receives likes. The value is the
// graph label of the subject node.
type SubjectType string

const (
	SubjectTypePolicy   SubjectType = "Policy"
	SubjectTypeCampaign SubjectType = "Campaign"
)

// ClientInfo carries the request metadata recorded on every vote.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// VoteAction is the outcome of a toggle, as reported to the client.
type VoteAction string

const (
	VoteActionLiked   VoteAction = "liked"
	VoteActionUnliked VoteAction = "unliked"
)

// VoteStatus is the read-path result for one subject, optionally scoped to a
// fingerprint.
type VoteStatus struct {
	Like    int64 `json:"like"`
	IsLiked bool  `json:"isLiked"`
}

// VoteReceipt is the write-path result of a toggle. Like is the recounted,
// authoritative number of live vote edges after the toggle.
type VoteReceipt struct {
	Like   int64      `json:"like"`
	Action VoteAction `json:"action"`
}

// VoteLogEntry is an immutable record of a single like/unlike action. Entries
// are append-only; nothing in the system updates or deletes them. The ledger
// stamps each entry with its own clock when the node is created.
type VoteLogEntry struct {
	Action      VoteAction
	SubjectType SubjectType
	SubjectID   int64
	Fingerprint string
	IP          string
	UserAgent   string
}

// AbuseReport records a rejected vote attempt for later review.
type AbuseReport struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	SubjectType SubjectType `bson:"subject_type" json:"subject_type"`
	SubjectID   int64       `bson:"subject_id" json:"subject_id"`
	Fingerprint string      `bson:"fingerprint" json:"fingerprint"`
	IP          string      `bson:"ip" json:"ip"`
	UserAgent   string      `bson:"user_agent" json:"user_agent"`
	Reason      string      `bson:"reason" json:"reason"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
}

// Abuse rejection reasons stored on AbuseReport.
const (
	AbuseReasonNetworkDuplicate = "network_duplicate"
	AbuseReasonVelocity         = "velocity"
)
