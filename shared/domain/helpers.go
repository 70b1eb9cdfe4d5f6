package domain

import "fmt"

// for debug
func (a *Attachment) String() string {
	s := fmt.Sprintf("[id:%s, message:%d, position:%d, type:%s", a.Id, a.MessageId, a.Position, a.MediaType)
	if a.Description != nil {
		s += fmt.Sprintf(", description:%q", *a.Description)
	}
	if a.Meta != nil {
		if a.Meta.Duration != nil {
			s += fmt.Sprintf(", duration:%v", *a.Meta.Duration)
		}
		if a.Meta.Small != nil {
			s += fmt.Sprintf(", small:%+v", *a.Meta.Small)
		}
		if a.Meta.Original != nil {
			s += fmt.Sprintf(", original:%+v", *a.Meta.Original)
		}
	}
	return s + "]"
}

// DescriptionText returns the description or "" when it is absent
func (a *Attachment) DescriptionText() string {
	if a == nil || a.Description == nil {
		return ""
	}
	return *a.Description
}
