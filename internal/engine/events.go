package engine

import "fmt"

type EventKind string

const (
	EventGameStarted     EventKind = "GAME_STARTED"
	EventDraftPick       EventKind = "DRAFT_PICK"
	EventDrafted         EventKind = "DRAFTED"
	EventUndrafted       EventKind = "UNDRAFTED"
	EventMatchResult     EventKind = "MATCH_RESULT"
	EventMilestone       EventKind = "MILESTONE"
	EventLevelUp         EventKind = "LEVEL_UP"
	EventInjury          EventKind = "INJURY"
	EventRecovered       EventKind = "RECOVERED"
	EventOfferReceived   EventKind = "OFFER_RECEIVED"
	EventOfferExpired    EventKind = "OFFER_EXPIRED"
	EventOfferRejected   EventKind = "OFFER_REJECTED"
	EventContractSigned  EventKind = "CONTRACT_SIGNED"
	EventContractRenewed EventKind = "CONTRACT_RENEWED"
	EventMediaEvent      EventKind = "MEDIA_EVENT"
	EventMediaResponse   EventKind = "MEDIA_RESPONSE"
	EventSocialPost      EventKind = "SOCIAL_POST"
	EventFanMilestone    EventKind = "FAN_MILESTONE"
	EventTraining        EventKind = "TRAINING"
	EventPurchase        EventKind = "PURCHASE"
	EventRewardClaimed   EventKind = "REWARD_CLAIMED"
	EventMilestoneSeen   EventKind = "MILESTONE_ACKNOWLEDGED"
	EventFinalsScheduled EventKind = "FINALS_SCHEDULED"
	EventEliminated      EventKind = "ELIMINATED"
	EventPremiership     EventKind = "PREMIERSHIP"
	EventBrownlow        EventKind = "BROWNLOW"
	EventSeasonComplete  EventKind = "SEASON_COMPLETE"
	EventRetired         EventKind = "RETIRED"
	EventGameReset       EventKind = "GAME_RESET"
)

// Event is a human-readable notice for the UI. Ref points at the entity involved, if any.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
	Ref     string    `json:"ref,omitempty"`
}

type eventLog []Event

func (l *eventLog) add(kind EventKind, ref, format string, args ...any) {
	*l = append(*l, Event{Kind: kind, Ref: ref, Message: fmt.Sprintf(format, args...)})
}
