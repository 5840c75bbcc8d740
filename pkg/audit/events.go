package audit

import (
	"fmt"
	"strconv"
)

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func withError(msg, errMsg string) string {
	if errMsg != "" {
		msg += ": " + errMsg
	}
	return msg
}

func severity(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

// TopicUploadEvent represents a topic set being (re)built from uploaded notes
type TopicUploadEvent struct {
	Actor        string
	ClientIP     string
	Topic        string
	Files        int
	Cards        int
	Success      bool
	ErrorMessage string
}

func (e TopicUploadEvent) MessageID() string {
	return "topic-upload"
}

func (e TopicUploadEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s uploaded %d file(s) to topic %s (%d cards)", e.Actor, e.Files, e.Topic, e.Cards)
	}
	return withError(fmt.Sprintf("%s tried to upload to topic %s", e.Actor, e.Topic), e.ErrorMessage)
}

func (e TopicUploadEvent) Severity() Severity {
	return severity(e.Success)
}

func (e TopicUploadEvent) Facility() int {
	return FacilityUser
}

func (e TopicUploadEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"topic": e.Topic,
		},
		SDIDStudy: {
			"files": strconv.Itoa(e.Files),
			"cards": strconv.Itoa(e.Cards),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "upload",
			"result":    result(e.Success),
		},
	}
}

// TopicDeleteEvent represents the removal of a topic set
type TopicDeleteEvent struct {
	Actor        string
	ClientIP     string
	Topic        string
	Success      bool
	ErrorMessage string
}

func (e TopicDeleteEvent) MessageID() string {
	return "topic-delete"
}

func (e TopicDeleteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s deleted topic %s", e.Actor, e.Topic)
	}
	return withError(fmt.Sprintf("%s tried to delete topic %s", e.Actor, e.Topic), e.ErrorMessage)
}

func (e TopicDeleteEvent) Severity() Severity {
	return severity(e.Success)
}

func (e TopicDeleteEvent) Facility() int {
	return FacilityUser
}

func (e TopicDeleteEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"topic": e.Topic,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "delete",
			"result":    result(e.Success),
		},
	}
}

// ProgressEvent represents a write to a profile's progress document.
// Operation is "update" or "delete".
type ProgressEvent struct {
	Actor        string
	ClientIP     string
	Profile      string
	Operation    string
	Success      bool
	ErrorMessage string
}

func (e ProgressEvent) MessageID() string {
	return "progress"
}

func (e ProgressEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd progress of %s", e.Actor, e.Operation, e.Profile)
	}
	return withError(fmt.Sprintf("%s tried to %s progress of %s", e.Actor, e.Operation, e.Profile), e.ErrorMessage)
}

func (e ProgressEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ProgressEvent) Facility() int {
	return FacilityUser
}

func (e ProgressEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"profile": e.Profile,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}

// ReviewEvent represents a single answered card
type ReviewEvent struct {
	Actor        string
	ClientIP     string
	Profile      string
	CardID       string
	Correct      bool
	Box          string
	Success      bool
	ErrorMessage string
}

func (e ReviewEvent) MessageID() string {
	return "review"
}

func (e ReviewEvent) Message() string {
	if !e.Success {
		return withError(fmt.Sprintf("%s tried to review card %s for %s", e.Actor, e.CardID, e.Profile), e.ErrorMessage)
	}
	outcome := "incorrectly"
	if e.Correct {
		outcome = "correctly"
	}
	return fmt.Sprintf("%s answered card %s %s, moved to box %s", e.Profile, e.CardID, outcome, e.Box)
}

func (e ReviewEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ReviewEvent) Facility() int {
	return FacilityUser
}

func (e ReviewEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"profile": e.Profile,
			"card":    e.CardID,
		},
		SDIDStudy: {
			"correct": strconv.FormatBool(e.Correct),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "review",
			"result":    result(e.Success),
		},
	}
	if e.Box != "" {
		sd[SDIDStudy]["box"] = e.Box
	}
	return sd
}

// AuthFailureEvent represents a request rejected for its bearer token
type AuthFailureEvent struct {
	ClientIP string
	Path     string
	Reason   string
}

func (e AuthFailureEvent) MessageID() string {
	return "authn"
}

func (e AuthFailureEvent) Message() string {
	return withError(fmt.Sprintf("request to %s failed to authenticate", e.Path), e.Reason)
}

func (e AuthFailureEvent) Severity() Severity {
	return SeverityWarning
}

func (e AuthFailureEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthFailureEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"path": e.Path,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    "failure",
		},
	}
}
