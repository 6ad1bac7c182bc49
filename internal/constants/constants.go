package constants

const (
	// PositionGap is the spacing between consecutive positions in a
	// project's task list. A new link goes at max(position)+PositionGap,
	// which leaves room to reinsert a task between two neighbours at the
	// arithmetic midpoint of their positions.
	PositionGap = 65535

	// ContextKeyUserID is the session/context key holding the synced user id.
	ContextKeyUserID = "user_id"

	// SessionName is the cookie name for the identity-sync session.
	SessionName = "taskhive_session"

	// MaxAIGeneratedTasks caps a single AI suggestion batch.
	MaxAIGeneratedTasks = 20
)
