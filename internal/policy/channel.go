package policy

import "github.com/noah-isme/placement-portal-api/internal/models"

// ChannelID identifies a college chat channel by normalised college name.
type ChannelID string

// GroupName is the label used for the channel in real-time frames.
func (c ChannelID) GroupName() string {
	return "College_" + string(c)
}

// ResolveChannel returns the student's channel, or false while the student is
// unapproved or has no college.
func ResolveChannel(student *models.Student) (ChannelID, bool) {
	if StudentApproval(student) != ApprovalApproved {
		return "", false
	}
	return ChannelID(CollegeKey(student.CollegeName)), true
}
