package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/metrics"
)

const chefSystemPrompt = `คุณคือ "เชฟโอปอ" เจ้าของร้าน "โอปอโภชนา" (Opor Pochana) ร้านอาหารอีสานรสเด็ดระดับตำนาน
บุคลิก:
- ใจดี สนุกสนาน เป็นกันเอง (ใช้คำแทนตัวว่า "เชฟ" หรือ "พี่โอปอ")
- มีความรู้เรื่องอาหารอีสานลึกซึ้ง
- ชอบแนะนำการจับคู่เมนู (Food Pairing)
- ถ้าลูกค้าเป็นระดับ Gold ให้ดูแลแบบ VIP อวยยศหน่อยๆ

หน้าที่:
- แนะนำเมนูอาหาร
- ตอบคำถามลูกค้าเกี่ยวกับอาหาร
- ชวนคุยเรื่องการกินให้อร่อย`

// Fallback replies
const (
	greetingEmptyFallback = "วันนี้เชฟขอแนะนำ ส้มตำไทยไข่เค็ม รสเด็ดครับ!"
	replyErrorFallback    = "ขออภัยครับ เชฟกำลังตำส้มตำอยู่ ไม่ทันได้ยินครับ"
	replyEmptyFallback    = "เชฟกำลังยุ่งหน้าเตา แต่แนะนำให้ลองลาบเป็ดครับ!"
)

// ChefService produces the chef's greeting and chat replies.
// It never returns an error; failures are answered with fixed text.
type ChefService struct {
	generator TextGenerator
}

// NewChefService creates a new chef service
func NewChefService(generator TextGenerator) *ChefService {
	return &ChefService{generator: generator}
}

func greetingErrorFallback(name string) string {
	return fmt.Sprintf("สวัสดีครับคุณ %s! วันนี้รับตำถาดแซ่บๆ สักที่ไหมครับ?", name)
}

// Greeting returns a short greeting with one dish recommendation
func (s *ChefService) Greeting(ctx context.Context, tier domain.Tier, points int, name string) string {
	prompt := fmt.Sprintf(`ข้อมูลลูกค้า:
ชื่อ: %s
ระดับ: %s
แต้ม: %d

โจทย์: ทักทายลูกค้าสั้นๆ และแนะนำเมนูเด็ดประจำวันนี้ 1 อย่างให้น่าทานที่สุด (ไม่เกิน 2 ประโยค)`, name, tier, points)

	text, err := s.generator.Generate(ctx, chefSystemPrompt, prompt)
	if err != nil {
		log.Printf("❌ Chef greeting failed: %v", err)
		metrics.AdviceFallbacks.WithLabelValues("greeting").Inc()
		return greetingErrorFallback(name)
	}
	if strings.TrimSpace(text) == "" {
		metrics.AdviceFallbacks.WithLabelValues("greeting").Inc()
		return greetingEmptyFallback
	}
	return text
}

// Reply answers one customer message. No history is kept between calls.
func (s *ChefService) Reply(ctx context.Context, message string, tier domain.Tier, name string) string {
	prompt := fmt.Sprintf(`ข้อมูลลูกค้า:
ชื่อ: %s (%s)

ลูกค้าถามว่า: "%s"

ตอบคำถามลูกค้าแบบสั้นๆ กระชับ ได้ใจความ และเป็นกันเอง:`, name, tier, message)

	text, err := s.generator.Generate(ctx, chefSystemPrompt, prompt)
	if err != nil {
		log.Printf("❌ Chef reply failed: %v", err)
		metrics.AdviceFallbacks.WithLabelValues("reply").Inc()
		return replyErrorFallback
	}
	if strings.TrimSpace(text) == "" {
		metrics.AdviceFallbacks.WithLabelValues("reply").Inc()
		return replyEmptyFallback
	}
	return text
}
