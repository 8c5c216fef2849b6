package agent

// Canned replies
const (
	ReplyThanks        = "Rất vui khi có thể giúp bạn 😊. Chúc bạn sớm tìm được công việc ưng ý! Nếu bạn muốn, mình có thể gợi ý thêm vài job khác?"
	ReplyGoodbye       = "Hẹn gặp lại bạn 👋 Chúc bạn một ngày tốt lành và sớm tìm được công việc như ý!"
	ReplyShowMorePage  = "Dưới đây là thêm một vài job nữa mà mình tìm thấy 👇"
	ReplyShowMoreDone  = "Hiện tại mình đã hiển thị tất cả job phù hợp rồi nhé 😊."
	ReplyShowMoreAsk   = "Bạn muốn xem thêm job của ngành nào nhỉ? (ví dụ: IT, giáo dục, thiết kế...)"
	ReplyGreeting      = "Chào bạn 👋! Mình là Job Assistant 🤖. Mình có thể giúp bạn tìm việc phù hợp. Bạn đang muốn tìm công việc ở lĩnh vực nào (IT, thiết kế, marketing...)?"
	ReplyNoMatch       = "Hiện chưa có công việc nào khớp với yêu cầu này. Bạn có muốn mình gợi ý công việc ở ngành khác không?"
	ReplyFallback      = "Dưới đây là danh sách các job phù hợp với yêu cầu của bạn 👇"
	reviewedTitle      = "Cuộc trò chuyện đã được xem xét"
	reviewedUsefulText = "Cảm ơn bạn! Cuộc trò chuyện của bạn với Job Assistant đã được đánh dấu là hữu ích."
	reviewedSpamText   = "Cuộc trò chuyện của bạn với Job Assistant đã bị đánh dấu là spam."
)
