package lib

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"travelapi/src/config"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func KafkaConsumer(groupId string, topic string, handler func(payload string)) {
	log.Println("Initializing kafka Consumer...")
	master, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": config.Get().KafkaBroker,
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	})

	if err != nil {
		log.Printf("Error on master: %s\n", err.Error())
		return
	}
	err = master.SubscribeTopics([]string{topic}, nil)
	if err != nil {
		log.Printf("Error on consumer: %s\n", err.Error())
		return
	}
	go func() {
		log.Printf("[%s]: waiting for messages...\n", topic)
		run := true
		for run == true {
			ev := master.Poll(100)
			switch e := ev.(type) {
			case *kafka.Message:
				handler(string(e.Value))
			case kafka.Error:
				fmt.Fprintf(os.Stderr, "%% Error: %v\n", e)
				run = false
			default:
				break
			}
		}
		master.Close()
	}()
}

func KafkaProduceMessage(clientId string, topic string, payload map[string]any) error {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": config.Get().KafkaBroker,
		"client.id":         clientId,
		"acks":              "all",
	})
	if err != nil {
		log.Printf("Error on producer: %s\n", err.Error())
		return err
	}

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing payload: %s\n", err.Error())
		return err
	}

	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}, nil)
	if err != nil {
		log.Printf("Error sending message to topic %s: %s\n", topic, err.Error())
		return err
	}
	return nil
}

func KafkaCreateTopics(topics ...string) ([]kafka.TopicResult, error) {
	a, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": config.Get().KafkaBroker,
	})
	if err != nil {
		log.Printf("Error on AdminClient: %s\n", err.Error())
		return nil, err
	}
	topicsDef := []kafka.TopicSpecification{}
	for _, topic := range topics {
		topicsDef = append(topicsDef, kafka.TopicSpecification{
			Topic:         topic,
			NumPartitions: 10,
		})
	}
	result, err := a.CreateTopics(context.Background(), topicsDef)
	if err != nil {
		log.Printf("Error creating topics: %s\n", err.Error())
		return nil, err
	}
	return result, nil
}
