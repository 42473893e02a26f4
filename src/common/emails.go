package common

import (
	"log"

	"travelapi/src/config"
	"travelapi/src/lib"
	awslib "travelapi/src/lib/aws"
	"travelapi/src/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/tidwall/gjson"
)

func deliverEmailMessage(spayload string) {
	if !gjson.Valid(spayload) {
		log.Println("[MAILER]: Received invalid json body. Aborting")
		return
	}
	from := gjson.Get(spayload, "from").String()
	fromName := gjson.Get(spayload, "from-name").String()
	subject := gjson.Get(spayload, "subject").String()
	body := gjson.Get(spayload, "body").String()
	html := gjson.Get(spayload, "html").Bool()

	toArr := gjson.Get(spayload, "to").Array()
	to := make([]string, 0)
	for _, item := range toArr {
		to = append(to, item.String())
	}

	go func() {
		if utils.IsProd() {
			awslib.SESSendMessage(
				aws.String(from),
				&sestypes.Destination{ToAddresses: to},
				&sestypes.Message{
					Subject: &sestypes.Content{Data: aws.String(subject)},
					Body:    &sestypes.Body{Text: &sestypes.Content{Data: aws.String(body)}},
				},
			)
			return
		}
		input := &lib.SendMailInput{
			From:     from,
			FromName: fromName,
			To:       to,
			Subject:  subject,
			Body:     body,
			Html:     html,
		}
		if err := lib.SendMail(input); err != nil {
			log.Printf("[MAILER] error sending email: %s\n", err.Error())
			return
		}
		log.Printf("[MAILER]: an email has been sent to %s\n", to)
	}()
}

func EmailsToSendConsumer() {
	qname := config.Get().EmailQueue
	log.Printf("%s: Listening for messages...", qname)
	c := awslib.NewSQSConsumer(qname, deliverEmailMessage)
	c.Listen()
}

func EmailsToSendKafkaConsumer() {
	topic := config.Get().EmailQueue
	log.Printf("%s: Listening for messages...", topic)
	lib.KafkaConsumer("emails_consumer", topic, deliverEmailMessage)
}
