package reviews

// CreateRequest is one rating with an optional comment. The target is
// taken from the URL, never the body.
type CreateRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
