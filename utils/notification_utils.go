// utils/notification_utils.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velomart/admin_backend/config"
	"github.com/velomart/admin_backend/models"
)

// SaveNotification saves an in-app notification for an admin user
func SaveNotification(db *mongo.Database, adminID primitive.ObjectID, title, message, notifType string, data interface{}) error {
	collection := db.Collection("notifications")

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		AdminID:   adminID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Data:      data,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	_, err := collection.InsertOne(context.Background(), notification)
	return err
}

// SendFCMNotificationToAdmin sends a Firebase push notification to an admin's
// registered device. Failures are logged, not fatal: the console shows the
// same event through the websocket feed anyway.
func SendFCMNotificationToAdmin(db *mongo.Database, adminID primitive.ObjectID, title, message string, data map[string]interface{}) error {
	var admin models.AdminUser
	err := db.Collection("admin_users").FindOne(context.Background(), bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		return fmt.Errorf("failed to find admin: %w", err)
	}

	if admin.FCMToken == "" {
		return fmt.Errorf("admin has no FCM token")
	}

	if config.FirebaseApp == nil {
		return fmt.Errorf("firebase app not initialized")
	}

	ctx := context.Background()
	client, err := config.FirebaseApp.Messaging(ctx)
	if err != nil {
		log.Printf("Error getting messaging client: %v", err)
		return fmt.Errorf("failed to initialize messaging client: %w", err)
	}

	notificationData := map[string]string{
		"type":      "admin_event",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	for key, value := range data {
		if str, ok := value.(string); ok {
			notificationData[key] = str
		} else {
			notificationData[key] = ""
		}
	}

	fcmMessage := &messaging.Message{
		Token: admin.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  message,
		},
		Data: notificationData,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "velomart_admin_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  message,
					},
					Sound: "default",
					Badge: func() *int { v := 1; return &v }(),
				},
			},
		},
	}

	response, err := client.Send(ctx, fcmMessage)
	if err != nil {
		log.Printf("Error sending FCM notification: %v", err)
		return fmt.Errorf("failed to send FCM notification: %w", err)
	}

	log.Printf("FCM notification sent to admin %s: %s", adminID.Hex(), response)
	return nil
}

// NotifySuperAdminsOfSubmission pushes a notification to every active super
// admin when a country admin submits pricing for review.
func NotifySuperAdminsOfSubmission(db *mongo.Database, title, message string, data map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.Collection("admin_users").Find(ctx, bson.M{
		"role":     models.RoleSuperAdmin,
		"isActive": true,
	})
	if err != nil {
		log.Printf("Failed to list super admins for notification: %v", err)
		return
	}
	defer cursor.Close(ctx)

	var admins []models.AdminUser
	if err := cursor.All(ctx, &admins); err != nil {
		log.Printf("Failed to decode super admins: %v", err)
		return
	}

	for _, admin := range admins {
		if err := SaveNotification(db, admin.ID, title, message, "pricing_submission", data); err != nil {
			log.Printf("Failed to save notification for admin %s: %v", admin.ID.Hex(), err)
		}
		if admin.FCMToken != "" {
			_ = SendFCMNotificationToAdmin(db, admin.ID, title, message, data)
		}
	}
}
