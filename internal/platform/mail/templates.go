package mail

// Template names passed to Sender.Send.
const (
	TemplateResetRequest = "reset_request"
	TemplateResetSuccess = "reset_success"
)

// Mail subjects per template.
const (
	SubjectResetRequest = "Password Reset Request"
	SubjectResetSuccess = "Password Changed"
)

// ResetRequestData is the data for the reset-request template.
type ResetRequestData struct {
	ResetURL string
	Code     int
}

const mailTemplates = `
{{define "reset_request"}}<p>You are receiving this email because we received a password reset request for your account.</p>
<p><a href="{{.ResetURL}}">Reset Password</a></p>
<p>Reset code: {{.Code}}</p>
<p>If you did not request a password reset, no further action is required.</p>{{end}}

{{define "reset_success"}}<p>Your password has been changed successfully.</p>
<p>If you did not make this change, please contact support immediately.</p>{{end}}
`
