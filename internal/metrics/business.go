package metrics

// Vote targets used as the label of VotesAppliedTotal.
const (
	VoteTargetArticle = "article"
	VoteTargetComment = "comment"
)

// IncrementArticleCreated increments the article creation counter
func (m *Metrics) IncrementArticleCreated() {
	m.safeExecute("IncrementArticleCreated", func() {
		m.ArticlesCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentsCreatedTotal.Inc()
	})
}

// IncrementCommentDeleted increments the comment deletion counter
func (m *Metrics) IncrementCommentDeleted() {
	m.safeExecute("IncrementCommentDeleted", func() {
		m.CommentsDeletedTotal.Inc()
	})
}

// IncrementVotesApplied counts one vote adjustment on target
func (m *Metrics) IncrementVotesApplied(target string) {
	m.safeExecute("IncrementVotesApplied", func() {
		m.VotesAppliedTotal.WithLabelValues(target).Inc()
	})
}
