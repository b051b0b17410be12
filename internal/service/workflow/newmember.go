package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"church-admin-be/internal/domain"
)

func (s *service) executeNewMember(ctx context.Context, contactID uuid.UUID) (*domain.WorkflowResult, error) {
	log.Printf("Executing new member workflow for contact: %s", contactID)

	result := &domain.WorkflowResult{}

	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil || contact == nil {
		log.Printf("Contact not found: %v", err)
		return result, nil
	}

	if contact.HasEmail() {
		s.sendWelcomeEmail(ctx, contact, result)
	}

	s.notifyStaffOfNewMember(ctx, contact, result)

	return result, nil
}

func (s *service) sendWelcomeEmail(ctx context.Context, contact *domain.Contact, result *domain.WorkflowResult) {
	log.Printf("Sending welcome email to new member: %s", *contact.Email)

	template, err := s.templateRepo.GetByNameAndChannel(ctx, domain.TemplateWelcomeMember, domain.ChannelEmail)
	if err != nil || template == nil {
		log.Printf("Welcome template not found: %v", err)
		return
	}

	church := s.churchSettings(ctx)
	fields := contact.TemplateFields()

	subject := template.Subject
	if subject == "" {
		subject = fmt.Sprintf("Welcome to %s!", church.ChurchName)
	} else {
		subject = Render(subject, fields, church)
	}
	body := Render(template.Body, fields, church)

	sendResult := s.sendEmailDirectly(ctx, EmailData{
		ToAddress:    *contact.Email,
		Subject:      subject,
		HTMLBody:     body,
		TextBody:     stripHTML(body),
		TemplateType: domain.TemplateWelcomeMember,
		ContactID:    contact.ID.String(),
	})

	if sendResult.Success {
		log.Printf("Welcome email queued for %s: %s", *contact.Email, sendResult.MessageID)
		result.RecordSent()
	} else {
		log.Printf("Failed to queue welcome email for %s: %s", *contact.Email, sendResult.Error)
		result.RecordFailure(*contact.Email, fmt.Errorf("%s", sendResult.Error))
	}
}

func (s *service) notifyStaffOfNewMember(ctx context.Context, contact *domain.Contact, result *domain.WorkflowResult) {
	log.Printf("Checking if staff should be notified about new member: %s", contact.FullName())

	notifyAdmin := s.shouldSendNotification(ctx, domain.NotificationMemberJoined, domain.MethodEmail, domain.RoleAdmin)
	notifyPastor := s.shouldSendNotification(ctx, domain.NotificationMemberJoined, domain.MethodEmail, domain.RolePastor)

	if !notifyAdmin && !notifyPastor {
		log.Println("No staff notifications enabled for new members")
		return
	}

	var userTypes []string
	if notifyAdmin {
		userTypes = append(userTypes, domain.StaffUserType(domain.RoleAdmin))
	}
	if notifyPastor {
		userTypes = append(userTypes, domain.StaffUserType(domain.RolePastor))
	}

	staff, err := s.staffRepo.ListActiveByUserTypes(ctx, userTypes)
	if err != nil {
		log.Printf("Error fetching staff users: %v", err)
		return
	}
	if len(staff) == 0 {
		log.Println("No staff users found to notify")
		return
	}

	church := s.churchSettings(ctx)

	subject := fmt.Sprintf("New Member Alert: %s joined %s", contact.FullName(), church.ChurchName)
	body := s.newMemberAlertBody(contact)
	textBody := fmt.Sprintf("New Member Alert: %s joined %s. Please follow up to welcome them.",
		contact.FullName(), church.ChurchName)

	// Each staff send is independent; one failure never blocks the rest.
	for _, user := range staff {
		sendResult := s.sendEmailDirectly(ctx, EmailData{
			ToAddress:   user.Email,
			FromAddress: s.cfg.FromEmail,
			Subject:     subject,
			HTMLBody:    body,
			TextBody:    textBody,
		})

		if sendResult.Success {
			log.Printf("Staff notification queued for %s: %s", user.Email, sendResult.MessageID)
			result.RecordSent()
		} else {
			log.Printf("Failed to queue staff notification for %s: %s", user.Email, sendResult.Error)
			result.RecordFailure(user.Email, fmt.Errorf("%s", sendResult.Error))
		}
	}
}

// newMemberAlertBody is fixed-format rather than template-driven so the
// staff alert keeps working even on a tenant with no templates configured.
func (s *service) newMemberAlertBody(contact *domain.Contact) string {
	email := ""
	if contact.Email != nil {
		email = *contact.Email
	}

	phoneRow := ""
	if contact.Phone != nil && *contact.Phone != "" {
		phoneRow = fmt.Sprintf(`<p><strong>Phone:</strong> %s</p>`, *contact.Phone)
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
		<h1 style="margin: 0; font-size: 24px;">New Member Alert!</h1>
	</div>

	<div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #343a40; margin-top: 0;">Member Details:</h2>
		<div style="background: white; padding: 20px; border-radius: 8px; margin: 15px 0;">
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			%s
			<p><strong>Joined:</strong> %s</p>
		</div>

		<p style="margin-bottom: 0;">Please follow up with this new member to ensure they feel welcomed and connected to our church family.</p>
	</div>
</div>`, contact.FullName(), email, phoneRow, s.now().Format("January 2, 2006"))
}
